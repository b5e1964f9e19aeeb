package client

import (
	"github.com/fivetwenty-io/minds/internal/auth"
	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/internal/http"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// Client implements the minds.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	project    string

	// Resource clients
	datasources minds.DatasourcesClient
	minds       minds.MindsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *minds.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client from an already normalized config. Callers outside
// this module go through mindsclient.New, which applies defaults.
func New(config *minds.Config) (*Client, error) {
	if config == nil {
		return nil, minds.ErrConfigRequired
	}

	if config.APIKey == "" {
		return nil, minds.ErrAPIKeyRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	httpClient := http.NewClient(baseURL, auth.NewAPIKey(config.APIKey), createHTTPClientOptions(config)...)

	return newWithHTTPClient(httpClient, config.Project), nil
}

func newWithHTTPClient(httpClient *http.Client, project string) *Client {
	if project == "" {
		project = constants.DefaultProject
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		project:    project,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.datasources = NewDatasourcesClient(c.httpClient)
	c.minds = NewMindsClient(c.httpClient, c.project)
}

// Datasources implements minds.Client.Datasources.
func (c *Client) Datasources() minds.DatasourcesClient {
	return c.datasources
}

// Minds implements minds.Client.Minds.
func (c *Client) Minds() minds.MindsClient {
	return c.minds
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Project returns the project minds are scoped to.
func (c *Client) Project() string {
	return c.project
}
