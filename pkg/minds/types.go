package minds

import (
	"fmt"
	"maps"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DatasourceConfig describes a datasource to create.
type DatasourceConfig struct {
	Name           string         `json:"name"                  yaml:"name"`
	Engine         string         `json:"engine"                yaml:"engine"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	ConnectionData map[string]any `json:"connection_data"       yaml:"connection_data"`
	Tables         []string       `json:"tables,omitempty"      yaml:"tables,omitempty"`
}

// Datasource represents a SQL datasource registered with the API.
type Datasource struct {
	Name           string         `json:"name"                  yaml:"name"`
	Engine         string         `json:"engine"                yaml:"engine"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	ConnectionData map[string]any `json:"connection_data"       yaml:"connection_data"`
	Tables         []string       `json:"tables,omitempty"      yaml:"tables,omitempty"`
}

// NewDatasource builds a datasource record from a create config.
func NewDatasource(cfg *DatasourceConfig) *Datasource {
	if cfg == nil {
		return &Datasource{}
	}

	return &Datasource{
		Name:           cfg.Name,
		Engine:         cfg.Engine,
		Description:    cfg.Description,
		ConnectionData: maps.Clone(cfg.ConnectionData),
		Tables:         slices.Clone(cfg.Tables),
	}
}

// Validate checks that the datasource has a name, an engine and connection
// data. An empty connection data map counts as present.
func (d *Datasource) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Engine, validation.Required),
		validation.Field(&d.ConnectionData, validation.NotNil),
	)
	if err != nil {
		return fmt.Errorf("%w: datasource must have a name, engine, and connection data: %w", ErrValidation, err)
	}

	return nil
}

// MindConfig holds the options for creating a mind.
type MindConfig struct {
	ModelName      string         `json:"model_name"                yaml:"model_name"`
	Provider       string         `json:"provider,omitempty"        yaml:"provider,omitempty"`
	PromptTemplate string         `json:"prompt_template,omitempty" yaml:"prompt_template,omitempty"`
	Datasources    []string       `json:"datasources,omitempty"     yaml:"datasources,omitempty"`
	Parameters     map[string]any `json:"parameters,omitempty"      yaml:"parameters,omitempty"`
}

// Mind represents a mind registered with the API.
type Mind struct {
	Name        string         `json:"name"                 yaml:"name"`
	ModelName   string         `json:"model_name"           yaml:"model_name"`
	Provider    string         `json:"provider"             yaml:"provider"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Datasources []string       `json:"datasources"          yaml:"datasources"`
	CreatedAt   string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ListResponse is the envelope returned by collection endpoints.
type ListResponse[T any] struct {
	Data []T `json:"data" yaml:"data"`
}
