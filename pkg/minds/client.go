package minds

import (
	"context"
	"time"
)

// DatasourcesClient manages datasources.
type DatasourcesClient interface {
	// Create registers a datasource and returns the server's view of it. When
	// replace is true an existing datasource with the same name is dropped first.
	Create(ctx context.Context, config *DatasourceConfig, replace bool) (*Datasource, error)
	// List returns every SQL datasource. Datasources without an engine are skipped.
	List(ctx context.Context) ([]*Datasource, error)
	Get(ctx context.Context, name string) (*Datasource, error)
	Drop(ctx context.Context, name string) error
}

// MindsClient manages minds.
type MindsClient interface {
	// Create registers a mind and returns the server's view of it. When
	// replace is true an existing mind with the same name is dropped first.
	Create(ctx context.Context, name string, config *MindConfig, replace bool) (*Mind, error)
	List(ctx context.Context) ([]*Mind, error)
	Get(ctx context.Context, name string) (*Mind, error)
	Drop(ctx context.Context, name string) error
}

// Client is the entry point to every resource service.
type Client interface {
	Datasources() DatasourcesClient
	Minds() MindsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Only APIKey is required. The client never retries and never logs unless
// RetryMax or Logger are set.
type Config struct {
	// APIKey is sent as a Bearer token on every request.
	APIKey string
	// BaseURL of the API (e.g., "https://mdb.ai/api"). mindsclient.New
	// trims a trailing slash and adds "https://" if no scheme is present.
	BaseURL string
	// Project is the project segment of mind paths. Defaults to "mindsdb".
	Project string

	// HTTPTimeout bounds each HTTP round trip. Zero uses the transport default.
	// A timeout surfaces as an unknown error with no response.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries for transient failures on GET and
	// DELETE. POST and PATCH are never retried. Zero disables retries.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
