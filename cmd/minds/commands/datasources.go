package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// NewDatasourcesCommand creates the datasources command group
func NewDatasourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasources",
		Aliases: []string{"datasource", "ds"},
		Short:   "Manage datasources",
		Long:    "List, inspect, create and drop SQL datasources",
	}

	cmd.AddCommand(newDatasourcesListCommand())
	cmd.AddCommand(newDatasourcesGetCommand())
	cmd.AddCommand(newDatasourcesCreateCommand())
	cmd.AddCommand(newDatasourcesDropCommand())

	return cmd
}

func newDatasourcesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List datasources",
		Long:  "List all SQL datasources. Datasources of other types are not shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			datasources, err := client.Datasources().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list datasources: %w", err)
			}

			if len(datasources) == 0 && isTableOutput() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No datasources found")

				return nil
			}

			return render(cmd.OutOrStdout(), datasources, func(t *tableOutput) {
				t.header("Name", "Engine", "Description", "Tables")

				for _, ds := range datasources {
					t.row(ds.Name, ds.Engine, ds.Description, strings.Join(ds.Tables, ", "))
				}
			})
		},
	}
}

func newDatasourcesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DATASOURCE_NAME",
		Short: "Get datasource details",
		Long:  "Display detailed information about a specific datasource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			datasource, err := client.Datasources().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get datasource: %w", err)
			}

			return renderDatasource(cmd, datasource)
		},
	}
}

func newDatasourcesCreateCommand() *cobra.Command {
	var (
		file           string
		name           string
		engine         string
		description    string
		connectionData string
		tables         []string
		replace        bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a datasource",
		Long: `Create a datasource from flags or from a JSON or YAML file.

Flags override values read from --file. With --replace an existing datasource
of the same name is dropped first.`,
		Example: `  minds datasources create --name sales --engine postgres \
    --connection-data '{"host":"db.example.com","port":5432,"database":"sales"}' \
    --tables orders,customers --replace

  minds datasources create --file sales.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &minds.DatasourceConfig{}

			if file != "" {
				loaded, err := loadDatasourceFile(file)
				if err != nil {
					return err
				}

				config = loaded
			}

			flags := cmd.Flags()

			if flags.Changed("name") {
				config.Name = name
			}

			if flags.Changed("engine") {
				config.Engine = engine
			}

			if flags.Changed("description") {
				config.Description = description
			}

			if flags.Changed("tables") {
				config.Tables = tables
			}

			if flags.Changed("connection-data") {
				data, err := parseJSONObject(connectionData, constants.ErrInvalidConnectionData)
				if err != nil {
					return err
				}

				config.ConnectionData = data
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			datasource, err := client.Datasources().Create(commandContext(cmd), config, replace)
			if err != nil {
				return fmt.Errorf("failed to create datasource: %w", err)
			}

			return renderDatasource(cmd, datasource)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML file describing the datasource")
	cmd.Flags().StringVar(&name, "name", "", "datasource name")
	cmd.Flags().StringVar(&engine, "engine", "", "database engine (e.g. postgres, mysql)")
	cmd.Flags().StringVar(&description, "description", "", "datasource description")
	cmd.Flags().StringVar(&connectionData, "connection-data", "", "connection settings as a JSON object")
	cmd.Flags().StringSliceVar(&tables, "tables", nil, "tables to expose")
	cmd.Flags().BoolVar(&replace, "replace", false, "drop an existing datasource with the same name first")

	return cmd
}

func newDatasourcesDropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop DATASOURCE_NAME",
		Short: "Drop a datasource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Datasources().Drop(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to drop datasource: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Datasource '%s' dropped\n", args[0])

			return nil
		},
	}
}

func renderDatasource(cmd *cobra.Command, datasource *minds.Datasource) error {
	return render(cmd.OutOrStdout(), datasource, func(t *tableOutput) {
		t.header("Property", "Value")
		t.row("Name", datasource.Name)
		t.row("Engine", datasource.Engine)
		t.row("Description", datasource.Description)
		t.row("Connection", formatConnectionData(datasource.ConnectionData))
		t.row("Tables", strings.Join(datasource.Tables, ", "))
	})
}

// loadDatasourceFile reads a datasource config from a .json, .yml or .yaml file.
func loadDatasourceFile(path string) (*minds.DatasourceConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	// The path is supplied by the user on the command line.
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var config minds.DatasourceConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &config)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedFileFormat, path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &config, nil
}

// parseJSONObject parses a JSON object flag value, returning invalid on failure.
func parseJSONObject(value string, invalid error) (map[string]interface{}, error) {
	var object map[string]interface{}

	err := json.Unmarshal([]byte(value), &object)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invalid, err)
	}

	if object == nil {
		return nil, invalid
	}

	return object, nil
}
