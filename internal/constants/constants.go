package constants

import "time"

// API defaults.
const (
	// DefaultBaseURL is the hosted Minds API endpoint.
	DefaultBaseURL = "https://mdb.ai/api"

	// DefaultProject is the project that owns minds unless configured otherwise.
	DefaultProject = "mindsdb"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "minds-go-client"
)

// API paths.
const (
	// DatasourcesPath is the datasources collection.
	DatasourcesPath = "/datasources"

	// ProjectsPath prefixes every project-scoped collection.
	ProjectsPath = "/projects"

	// MindsSegment is the minds collection inside a project.
	MindsSegment = "minds"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless configured.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP status boundaries.
const (
	// HTTPStatusOK is the first successful status code.
	HTTPStatusOK = 200

	// HTTPStatusMultipleChoices is the first status code past the success range.
	HTTPStatusMultipleChoices = 300

	// HTTPStatusBadRequest is the first client error status code.
	HTTPStatusBadRequest = 400
)

// Command line argument counts.
const (
	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON and YAML indentation.
	JSONIndentSize = 2
)

// Display limits.
const (
	// MaskedKeyVisibleChars is how many trailing characters of an API key are shown.
	MaskedKeyVisibleChars = 4
)
