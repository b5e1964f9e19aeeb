// Package mindsclient provides the main entry point for creating Minds API clients
package mindsclient

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/minds/internal/client"
	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// New creates a new Minds API client. The config is copied, so later changes
// to it do not affect the returned client.
func New(config *minds.Config) (minds.Client, error) {
	if config == nil {
		return nil, minds.ErrConfigRequired
	}

	normalized := *config

	if normalized.APIKey == "" {
		return nil, minds.ErrAPIKeyRequired
	}

	err := validateConfig(&normalized)
	if err != nil {
		return nil, err
	}

	normalized.BaseURL = normalizeBaseURL(normalized.BaseURL)

	if normalized.Project == "" {
		normalized.Project = constants.DefaultProject
	}

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeBaseURL applies the default endpoint, trims a trailing slash and
// assumes https when no scheme is given.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

func validateConfig(config *minds.Config) error {
	err := validation.ValidateStruct(config,
		validation.Field(&config.HTTPTimeout, validation.Min(0)),
		validation.Field(&config.RetryMax, validation.Min(0)),
		validation.Field(&config.RetryWaitMin, validation.Min(0)),
		validation.Field(&config.RetryWaitMax, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: invalid config: %w", minds.ErrValidation, err)
	}

	return nil
}

// NewWithAPIKey creates a new client for the default endpoint.
func NewWithAPIKey(apiKey string) (minds.Client, error) {
	return New(&minds.Config{
		APIKey: apiKey,
	})
}

// NewWithEndpoint creates a new client for a custom endpoint, such as a
// self-hosted deployment.
func NewWithEndpoint(apiKey, baseURL string) (minds.Client, error) {
	return New(&minds.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
	})
}
