// Package oktaclient provides the main entry point for creating Okta API clients
package oktaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdwallick/okta-sdk-go/internal/client"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// New creates a new Okta API client. config.OrgURL is normalised in place: a missing
// scheme becomes https:// and a trailing slash is dropped.
func New(ctx context.Context, config *okta.Config) (okta.Client, error) {
	if config == nil {
		return nil, okta.ErrConfigRequired
	}

	if config.OrgURL == "" {
		return nil, okta.ErrOrgURLRequired
	}

	config.OrgURL = NormalizeOrgURL(config.OrgURL)

	// Use the internal client implementation
	c, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeOrgURL returns orgURL with an explicit scheme and no trailing slash.
func NormalizeOrgURL(orgURL string) string {
	orgURL = strings.TrimRight(strings.TrimSpace(orgURL), "/")
	if !strings.HasPrefix(orgURL, "http://") && !strings.HasPrefix(orgURL, "https://") {
		orgURL = "https://" + orgURL
	}

	return orgURL
}

// NewWithAPIToken creates a new client authenticated with an Okta API token (SSWS).
func NewWithAPIToken(ctx context.Context, orgURL, token string) (okta.Client, error) {
	return New(ctx, &okta.Config{
		OrgURL:   orgURL,
		APIToken: token,
	})
}

// NewWithAccessToken creates a new client authenticated with an OAuth 2.0 access token.
func NewWithAccessToken(ctx context.Context, orgURL, token string) (okta.Client, error) {
	return New(ctx, &okta.Config{
		OrgURL:      orgURL,
		AccessToken: token,
	})
}
