package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
	"github.com/fivetwenty-io/minds/pkg/mindsclient"
)

// Configuration keys as stored in the config file and read through viper.
const (
	keyAPIKey  = "api_key"
	keyBaseURL = "base_url"
	keyProject = "project"
	keyOutput  = "output"
)

var configKeys = []string{keyAPIKey, keyBaseURL, keyProject, keyOutput}

// Config represents the CLI configuration.
type Config struct {
	APIKey  string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Project string `json:"project,omitempty"  yaml:"project,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
}

// Validate checks the stored values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Output, validation.In(constants.FormatTable, constants.FormatJSON, constants.FormatYAML)),
	)
}

// Masked returns a copy that is safe to print.
func (c *Config) Masked() *Config {
	masked := *c
	masked.APIKey = maskAPIKey(c.APIKey)

	return &masked
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}

	if len(key) <= constants.MaskedKeyVisibleChars {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", len(key)-constants.MaskedKeyVisibleChars) + key[len(key)-constants.MaskedKeyVisibleChars:]
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the stored API key, endpoint, project and output format",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			return render(cmd.OutOrStdout(), config, func(t *tableOutput) {
				t.header("Property", "Value")
				t.row("API Key", config.APIKey)
				t.row("Base URL", valueOrDefault(config.BaseURL, constants.DefaultBaseURL))
				t.row("Project", valueOrDefault(config.Project, constants.DefaultProject))
				t.row("Output", valueOrDefault(config.Output, constants.FormatTable))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			if key == keyAPIKey {
				value = maskAPIKey(value)
			}

			return outputConfigUpdateResult(cmd, "Set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value so its default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd, "Unset", key, "")
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			return outputConfigUpdateResult(cmd, "Cleared", "all configuration", "")
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPIKey:
		config.APIKey = value
	case keyBaseURL:
		config.BaseURL = value
	case keyProject:
		config.Project = value
	case keyOutput:
		config.Output = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
	}

	err := config.Validate()
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return nil
}

// loadConfig reads the effective configuration from viper, which layers
// flags over environment over the config file.
func loadConfig() *Config {
	return &Config{
		APIKey:  viper.GetString(keyAPIKey),
		BaseURL: viper.GetString(keyBaseURL),
		Project: viper.GetString(keyProject),
		Output:  viper.GetString(keyOutput),
	}
}

// readConfigFile reads only what is stored in the config file, so that
// values coming from flags or the environment are never persisted.
func readConfigFile() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	// configFile comes from the --config flag or the user's home directory.
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func configFilePath() (string, error) {
	if configFile := viper.GetString("config"); configFile != "" {
		return configFile, nil
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".minds", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(cmd *cobra.Command, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return render(cmd.OutOrStdout(), result, func(t *tableOutput) {
		t.header("Property", "Value")
		t.row("Action", action)
		t.row("Key", key)

		if value != "" {
			t.row("Value", value)
		}
	})
}

// createClient builds an API client from the effective configuration.
func createClient() (minds.Client, error) {
	return newClient(loadConfig())
}

func newClient(config *Config) (minds.Client, error) {
	if config.APIKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	clientConfig := &minds.Config{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		Project:     config.Project,
		HTTPTimeout: constants.DefaultHTTPTimeout,
		UserAgent:   constants.DefaultUserAgent + "-cli",
	}

	if viper.GetBool("verbose") {
		clientConfig.Logger = newLogger(os.Stderr, hclog.Debug)
		clientConfig.Debug = true
	}

	client, err := mindsclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// commandContext returns the command's context, which is only set when the
// command runs through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback + " (default)"
	}

	return value
}
