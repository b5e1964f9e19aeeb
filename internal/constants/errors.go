package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'minds login' or set MINDS_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyAPIKey        = errors.New("API key cannot be empty")
)

// Input errors.
var (
	ErrInvalidConnectionData = errors.New("--connection-data must be a JSON object")
	ErrInvalidParameters     = errors.New("--parameters must be a JSON object")
	ErrUnsupportedFileFormat = errors.New("unsupported file format, use .json, .yml or .yaml")
	ErrNotRegularFile        = errors.New("path is not a regular file")
	ErrUnsupportedOutput     = errors.New("unsupported output format")
)
