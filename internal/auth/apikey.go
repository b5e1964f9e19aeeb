// Package auth provides request credentials for the Minds API.
package auth

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Credentials decorates an outgoing request with authentication.
type Credentials interface {
	Apply(req *http.Request)
}

// APIKey authenticates requests with a static Bearer token. The key is never
// refreshed; its lifetime is the caller's concern.
type APIKey struct {
	key string
}

// NewAPIKey creates API key credentials.
func NewAPIKey(key string) *APIKey {
	return &APIKey{key: key}
}

// Apply sets the Authorization header. The header is rebuilt on every call.
func (k *APIKey) Apply(req *http.Request) {
	if k == nil || k.key == "" {
		return
	}

	token := &oauth2.Token{AccessToken: k.key}
	token.SetAuthHeader(req)
}
