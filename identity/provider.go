// Package identity adapts the external identity provider to the onboarding flow.
package identity

import (
	"context"
	"net/http"
	"time"
)

// AuthState is the provider's view of the current user. It is read-only to callers.
type AuthState struct {
	Ready         bool
	Authenticated bool
	UserID        string
	PhoneNumber   *string
}

// Provider is the identity capability bound to a single request.
type Provider interface {
	AuthState(ctx context.Context) AuthState
	Logout(ctx context.Context) error
}

// LoginFlow carries the per-login values that must survive the round trip to the provider.
type LoginFlow struct {
	State    string
	Nonce    string
	Verifier string
}

// Login is the result of a completed authorization code exchange.
type Login struct {
	UserID       string
	IDToken      string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Authenticator is the long-lived side of the provider.
type Authenticator interface {
	Ready(ctx context.Context) bool
	ForRequest(w http.ResponseWriter, r *http.Request) Provider
	AuthCodeURL(ctx context.Context, flow LoginFlow) (string, error)
	Exchange(ctx context.Context, code string, flow LoginFlow) (*Login, error)
	StoreLogin(w http.ResponseWriter, r *http.Request, login *Login)
}
