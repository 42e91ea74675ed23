package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config file location, relative to the home directory.
const (
	ConfigDirName  = ".okta"
	ConfigFileName = "okta"
	configFileExt  = ".yaml"
)

// Config represents the CLI configuration file.
type Config struct {
	OrgURL         string     `json:"org_url,omitempty"          yaml:"org_url,omitempty"`
	APIToken       string     `json:"api_token,omitempty"        yaml:"api_token,omitempty"`
	AccessToken    string     `json:"access_token,omitempty"     yaml:"access_token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	LastUpdated    *time.Time `json:"last_updated,omitempty"     yaml:"last_updated,omitempty"`

	// Global settings
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
	LogLevel  string `json:"log_level,omitempty"  yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`

	// Event export
	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" yaml:"nats_subject,omitempty"`
}

// configKeys are the settable keys of the config file, mapped to their setters.
var configKeys = map[string]func(*Config, string){
	"org_url":      func(c *Config, v string) { c.OrgURL = v },
	"api_token":    func(c *Config, v string) { c.APIToken = v },
	"access_token": func(c *Config, v string) { c.AccessToken = v },
	"output":       func(c *Config, v string) { c.Output = v },
	"log_level":    func(c *Config, v string) { c.LogLevel = v },
	"log_format":   func(c *Config, v string) { c.LogFormat = v },
	"nats_url":     func(c *Config, v string) { c.NATSURL = v },
	"nats_subject": func(c *Config, v string) { c.NATSSubject = v },
}

// DefaultConfigPath returns $HOME/.okta/okta.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ConfigDirName, ConfigFileName+configFileExt), nil
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	if flagged := viper.GetString("config"); flagged != "" {
		return flagged, nil
	}

	return DefaultConfigPath()
}

// LoadConfigFile reads the config file at path. A missing file yields an empty config.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's own config file
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfigFile writes config to path, creating its directory when needed.
func SaveConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

func saveConfigStruct(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	return SaveConfigFile(path, config)
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the settings stored in the okta CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file contents with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			shown := *config
			if !showSecrets {
				shown.APIToken = maskSecret(shown.APIToken)
				shown.AccessToken = maskSecret(shown.AccessToken)
			}

			return render(cmd.OutOrStdout(), shown, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("Org URL", valueOrNA(shown.OrgURL))
				_ = table.Append("API Token", valueOrNA(shown.APIToken))
				_ = table.Append("Access Token", valueOrNA(shown.AccessToken))
				_ = table.Append("Output", valueOrNA(shown.Output))
				_ = table.Append("Log Level", valueOrNA(shown.LogLevel))
				_ = table.Append("NATS URL", valueOrNA(shown.NATSURL))

				if shown.LastUpdated != nil {
					_ = table.Append("Last Updated", formatTime(*shown.LastUpdated))
				}

				return renderTable(table)
			})
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print tokens unmasked")

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(sortedConfigKeys(), ", "),
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigKey(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigKey(cmd.OutOrStdout(), args[0], "")
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}

func updateConfigKey(w io.Writer, key, value string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(sortedConfigKeys(), ", "))
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	setter(config, value)

	now := time.Now().UTC()
	config.LastUpdated = &now

	err = saveConfigStruct(config)
	if err != nil {
		return err
	}

	if value == "" {
		_, _ = fmt.Fprintf(w, "Unset %s\n", key)
	} else {
		_, _ = fmt.Fprintf(w, "Set %s\n", key)
	}

	return nil
}

func sortedConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) < constants.MinimumTokenLengthForMask {
		return constants.MaskedSecret
	}

	return secret[:4] + constants.MaskedSecret
}
