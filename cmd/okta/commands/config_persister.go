package commands

import (
	"sync"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
)

// ConfigPersister implements the auth.ConfigPersister interface over the CLI
// configuration file.
type ConfigPersister struct {
	path  string
	mutex sync.Mutex
}

// NewConfigPersister creates a persister writing to path. An empty path uses the
// config file in use.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// UpdateAPIToken stores the org URL and API token in the config file.
func (p *ConfigPersister) UpdateAPIToken(orgURL, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	path := p.path
	if path == "" {
		var err error

		path, err = configFilePath()
		if err != nil {
			return err
		}
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		return err
	}

	config.OrgURL = oktaclient.NormalizeOrgURL(orgURL)
	config.APIToken = token
	config.AccessToken = ""

	config.TokenExpiresAt = nil
	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	now := time.Now().UTC()
	config.LastUpdated = &now

	return SaveConfigFile(path, config)
}
