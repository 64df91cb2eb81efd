// Package session decides whether a user may use the onboarding form.
//
// The gate distinguishes the refresh token, which stands for the login session,
// from the access token, which authorises individual requests. Only a missing or
// invalid refresh token forces a logout; access token problems are left to the
// submission flow.
package session

import (
	"context"

	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/token"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/rs/zerolog"
)

// DefaultEntryRoute is where unauthenticated users are sent.
const DefaultEntryRoute = "/"

type State int

const (
	Initializing State = iota
	Unauthenticated
	AuthenticatedInvalidRefresh
	AuthenticatedValid
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedInvalidRefresh:
		return "authenticated_invalid_refresh"
	case AuthenticatedValid:
		return "authenticated_valid"
	}
	return "unknown"
}

// Gate evaluates the provider and token state of one request.
type Gate struct {
	provider   identity.Provider
	validator  token.Validator
	store      tokens.Store
	navigator  Navigator
	entryRoute string
}

type Option func(*Gate)

func WithEntryRoute(route string) Option {
	return func(g *Gate) {
		g.entryRoute = route
	}
}

func NewGate(provider identity.Provider, validator token.Validator, store tokens.Store, navigator Navigator, opts ...Option) *Gate {
	g := &Gate{
		provider:   provider,
		validator:  validator,
		store:      store,
		navigator:  navigator,
		entryRoute: DefaultEntryRoute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate returns the current state without side effects.
func (g *Gate) Evaluate(ctx context.Context) (State, identity.AuthState) {
	auth := g.provider.AuthState(ctx)
	switch {
	case !auth.Ready:
		return Initializing, auth
	case !auth.Authenticated:
		return Unauthenticated, auth
	case !g.validator.RefreshTokenValid():
		return AuthenticatedInvalidRefresh, auth
	}
	return AuthenticatedValid, auth
}

// Enforce evaluates the state and performs its transition.
// Unauthenticated users are sent to the entry route. An invalid refresh token
// ends the session: both tokens are cleared, the provider is logged out and the
// user is sent to the entry route.
func (g *Gate) Enforce(ctx context.Context) (State, identity.AuthState) {
	state, auth := g.Evaluate(ctx)
	switch state {
	case Unauthenticated:
		g.navigator.Navigate(g.entryRoute)
	case AuthenticatedInvalidRefresh:
		tokens.ClearAll(g.store)
		if err := g.provider.Logout(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("user_id", auth.UserID).Msg("provider logout failed")
		}
		g.navigator.Navigate(g.entryRoute)
	}
	return state, auth
}
