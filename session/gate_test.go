package session_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/identity/providerfake"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/session/navigatorfake"
	"github.com/jrsteele09/go-onboarding-server/token/validatorfake"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/jrsteele09/go-onboarding-server/tokens/storefake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	provider  *providerfake.FakeProvider
	validator *validatorfake.FakeValidator
	store     *storefake.FakeStore
	navigator *navigatorfake.FakeNavigator
	gate      *session.Gate
}

func setupGate(t *testing.T, auth identity.AuthState, accessValid, refreshValid bool) *gateFixture {
	t.Helper()
	f := &gateFixture{
		provider:  providerfake.NewFakeProvider(auth),
		validator: validatorfake.NewFakeValidator(accessValid, refreshValid),
		store:     storefake.NewFakeStore().WithTokens("access-1", "refresh-1"),
		navigator: navigatorfake.NewFakeNavigator(),
	}
	f.gate = session.NewGate(f.provider, f.validator, f.store, f.navigator)
	return f
}

func TestGate_Initializing(t *testing.T) {
	f := setupGate(t, identity.AuthState{}, true, false)

	state, _ := f.gate.Enforce(context.Background())

	require.Equal(t, session.Initializing, state)
	require.Empty(t, f.navigator.Paths)
	require.Empty(t, f.store.Cleared)
	require.Zero(t, f.provider.Logouts)
	require.Zero(t, f.validator.RefreshChecks)
}

func TestGate_UnauthenticatedRedirectsToEntry(t *testing.T) {
	for _, refreshValid := range []bool{true, false} {
		f := setupGate(t, identity.AuthState{Ready: true}, true, refreshValid)

		state, _ := f.gate.Enforce(context.Background())

		require.Equal(t, session.Unauthenticated, state)
		require.Equal(t, []string{"/"}, f.navigator.Paths)
		require.Empty(t, f.store.Cleared)
		require.Zero(t, f.provider.Logouts)
	}
}

func TestGate_InvalidRefreshForcesLogout(t *testing.T) {
	for _, accessValid := range []bool{true, false} {
		f := setupGate(t, providerfake.Authenticated("u1", "+100000"), accessValid, false)

		state, auth := f.gate.Enforce(context.Background())

		require.Equal(t, session.AuthenticatedInvalidRefresh, state)
		require.Equal(t, "u1", auth.UserID)
		require.ElementsMatch(t, []tokens.Name{tokens.Access, tokens.Refresh}, f.store.Cleared)
		require.Equal(t, 1, f.provider.Logouts)
		require.Equal(t, []string{"/"}, f.navigator.Paths)
		require.Zero(t, f.validator.AccessChecks, "access validity is not consulted")
	}
}

func TestGate_LogoutErrorIsLogged(t *testing.T) {
	f := setupGate(t, providerfake.Authenticated("u1", ""), true, false)
	f.provider.LogoutErr = errors.New("provider unreachable")

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	state, _ := f.gate.Enforce(ctx)

	require.Equal(t, session.AuthenticatedInvalidRefresh, state)
	require.Equal(t, []string{"/"}, f.navigator.Paths)
	require.Contains(t, buf.String(), "provider unreachable")
}

func TestGate_ValidSessionHasNoSideEffects(t *testing.T) {
	f := setupGate(t, providerfake.Authenticated("u1", ""), false, true)

	state, _ := f.gate.Enforce(context.Background())

	require.Equal(t, session.AuthenticatedValid, state)
	require.Empty(t, f.navigator.Paths)
	require.Empty(t, f.store.Cleared)
	require.Zero(t, f.provider.Logouts)
}

func TestGate_CustomEntryRoute(t *testing.T) {
	f := setupGate(t, identity.AuthState{Ready: true}, true, true)
	gate := session.NewGate(f.provider, f.validator, f.store, f.navigator, session.WithEntryRoute("/welcome"))

	gate.Enforce(context.Background())

	require.Equal(t, []string{"/welcome"}, f.navigator.Paths)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "authenticated_valid", session.AuthenticatedValid.String())
	require.Equal(t, "unknown", session.State(42).String())
}
