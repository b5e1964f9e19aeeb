package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// NewMindsCommand creates the minds command group
func NewMindsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "minds",
		Aliases: []string{"mind"},
		Short:   "Manage minds",
		Long:    "List, inspect, create and drop minds in the configured project",
	}

	cmd.AddCommand(newMindsListCommand())
	cmd.AddCommand(newMindsGetCommand())
	cmd.AddCommand(newMindsCreateCommand())
	cmd.AddCommand(newMindsDropCommand())

	return cmd
}

func newMindsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List minds",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Minds().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list minds: %w", err)
			}

			if len(result) == 0 && isTableOutput() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No minds found")

				return nil
			}

			return render(cmd.OutOrStdout(), result, func(t *tableOutput) {
				t.header("Name", "Model", "Provider", "Datasources", "Updated")

				for _, mind := range result {
					t.row(mind.Name, mind.ModelName, mind.Provider, strings.Join(mind.Datasources, ", "), mind.UpdatedAt)
				}
			})
		},
	}
}

func newMindsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MIND_NAME",
		Short: "Get mind details",
		Long:  "Display detailed information about a specific mind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			mind, err := client.Minds().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get mind: %w", err)
			}

			return renderMind(cmd, mind)
		},
	}
}

func newMindsCreateCommand() *cobra.Command {
	var (
		modelName      string
		provider       string
		promptTemplate string
		datasources    []string
		parameters     string
		replace        bool
	)

	cmd := &cobra.Command{
		Use:   "create MIND_NAME",
		Short: "Create a mind",
		Long: `Create a mind that answers questions over the given datasources.

With --replace an existing mind of the same name is dropped first.`,
		Example: `  minds minds create sales-helper --model-name gpt-4o --provider openai \
    --datasources sales --prompt-template 'Answer using the sales data: {{question}}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &minds.MindConfig{
				ModelName:      modelName,
				Provider:       provider,
				PromptTemplate: promptTemplate,
				Datasources:    datasources,
			}

			if parameters != "" {
				parsed, err := parseJSONObject(parameters, constants.ErrInvalidParameters)
				if err != nil {
					return err
				}

				config.Parameters = parsed
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			mind, err := client.Minds().Create(commandContext(cmd), args[0], config, replace)
			if err != nil {
				return fmt.Errorf("failed to create mind: %w", err)
			}

			return renderMind(cmd, mind)
		},
	}

	cmd.Flags().StringVarP(&modelName, "model-name", "m", "", "model that powers the mind")
	cmd.Flags().StringVar(&provider, "provider", "", "model provider (e.g. openai)")
	cmd.Flags().StringVar(&promptTemplate, "prompt-template", "", "prompt template")
	cmd.Flags().StringSliceVarP(&datasources, "datasources", "d", nil, "datasources the mind can query")
	cmd.Flags().StringVar(&parameters, "parameters", "", "extra model parameters as a JSON object")
	cmd.Flags().BoolVar(&replace, "replace", false, "drop an existing mind with the same name first")

	_ = cmd.MarkFlagRequired("model-name")

	return cmd
}

func newMindsDropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop MIND_NAME",
		Short: "Drop a mind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Minds().Drop(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to drop mind: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Mind '%s' dropped\n", args[0])

			return nil
		},
	}
}

func renderMind(cmd *cobra.Command, mind *minds.Mind) error {
	return render(cmd.OutOrStdout(), mind, func(t *tableOutput) {
		t.header("Property", "Value")
		t.row("Name", mind.Name)
		t.row("Model", mind.ModelName)
		t.row("Provider", mind.Provider)
		t.row("Datasources", strings.Join(mind.Datasources, ", "))
		t.row("Parameters", formatConnectionData(mind.Parameters))
		t.row("Created", mind.CreatedAt)
		t.row("Updated", mind.UpdatedAt)
	})
}
