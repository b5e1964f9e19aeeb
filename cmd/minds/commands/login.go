package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/minds/internal/constants"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiKey  string
		baseURL string
		project string
		verify  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long: `Store an API key, and optionally an endpoint and project, in the config file.

The key is read from the terminal without echo unless --key is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				key, err := promptAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				apiKey = key
			}

			if apiKey == "" {
				return constants.ErrEmptyAPIKey
			}

			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.APIKey = apiKey

			if baseURL != "" {
				config.BaseURL = baseURL
			}

			if project != "" {
				config.Project = project
			}

			if verify {
				err = verifyCredentials(cmd, config)
				if err != nil {
					return err
				}
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")

			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&baseURL, "endpoint", "", "API base URL to store")
	cmd.Flags().StringVar(&project, "project-name", "", "project to store")
	cmd.Flags().BoolVar(&verify, "verify", true, "check the key by listing minds before saving")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.APIKey = ""

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")

			return nil
		},
	}
}

// promptAPIKey reads a key without echo from a terminal, or a single line
// from any other input.
func promptAPIKey(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "API key: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		key, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return strings.TrimSpace(string(key)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func verifyCredentials(cmd *cobra.Command, config *Config) error {
	client, err := newClient(config)
	if err != nil {
		return err
	}

	_, err = client.Minds().List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to verify API key: %w", err)
	}

	return nil
}
