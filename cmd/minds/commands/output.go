package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// tableOutput collects rows for a table and remembers the first append error.
type tableOutput struct {
	table *tablewriter.Table
	err   error
}

func (t *tableOutput) header(columns ...any) {
	t.table.Header(columns...)
}

func (t *tableOutput) row(cells ...any) {
	if t.err != nil {
		return
	}

	err := t.table.Append(cells...)
	if err != nil {
		t.err = fmt.Errorf("failed to append table row: %w", err)
	}
}

// render writes data in the output format selected by --output. fillTable
// builds the table form.
func render(w io.Writer, data any, fillTable func(t *tableOutput)) error {
	output := viper.GetString("output")

	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	case constants.FormatTable, "":
		t := &tableOutput{table: tablewriter.NewWriter(w)}

		fillTable(t)

		if t.err != nil {
			return t.err
		}

		err := t.table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, output)
	}
}

func isTableOutput() bool {
	output := viper.GetString("output")

	return output == "" || output == constants.FormatTable
}

// FormatError renders an error for the terminal, naming the API error kind
// when there is one.
func FormatError(err error) string {
	var apiErr *minds.Error
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error (%s): %s", apiErr.Kind, err)
	}

	return "Error: " + err.Error()
}

var sensitiveKeyParts = []string{"password", "secret", "token", "key", "credential"}

// formatConnectionData renders connection settings as sorted key=value pairs
// with secrets masked.
func formatConnectionData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))

	for _, key := range keys {
		value := fmt.Sprint(data[key])
		if isSensitiveKey(key) {
			value = "********"
		}

		pairs = append(pairs, key+"="+value)
	}

	return strings.Join(pairs, ", ")
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}

	return false
}
