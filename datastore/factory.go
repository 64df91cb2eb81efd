// Package datastore talks to the backend-as-a-service REST interface (PostgREST dialect).
package datastore

import (
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// ClientFactory builds a data store client authorised with an access token.
type ClientFactory interface {
	Create(accessToken string) Updater
}

// Factory creates a new Client on every call. Nothing is cached between calls.
type Factory struct {
	baseURL string
	apiKey  string
	base    http.RoundTripper
}

var _ ClientFactory = (*Factory)(nil)

type FactoryOption func(*Factory)

// WithTransport sets the round tripper underneath the bearer token transport.
func WithTransport(rt http.RoundTripper) FactoryOption {
	return func(f *Factory) {
		f.base = rt
	}
}

func NewFactory(baseURL, apiKey string, opts ...FactoryOption) *Factory {
	f := &Factory{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		base:    http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a client that sends accessToken as a bearer credential on every request.
// An empty token still yields a client, the remote is expected to reject its calls.
func (f *Factory) Create(accessToken string) Updater {
	return f.NewClient(accessToken)
}

func (f *Factory) NewClient(accessToken string) *Client {
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: accessToken,
				TokenType:   "Bearer",
			}),
			Base: f.base,
		},
	}
	return &Client{
		baseURL: f.baseURL,
		apiKey:  f.apiKey,
		http:    httpClient,
	}
}
