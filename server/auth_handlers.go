package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/server/authflowrepo"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// LoginHandler starts the authorization code flow with PKCE and a nonce.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx)

		if !s.authn.Ready(ctx) {
			redirectWithError(w, r, RouteIndex, "Sign in is not available right now, please try again")
			return
		}

		state := uuid.NewString()
		flow := identity.LoginFlow{
			State:    state,
			Nonce:    uuid.NewString(),
			Verifier: oauth2.GenerateVerifier(),
		}
		err := s.authFlows.Upsert(ctx, state, &authflowrepo.AuthFlowState{
			CodeVerifier: flow.Verifier,
			Nonce:        flow.Nonce,
			ReturnURL:    safeReturnURL(r.URL.Query().Get("return_url")),
			CreatedAt:    time.Now(),
		})
		if err != nil {
			logger.Error().Err(err).Msg("storing login flow state failed")
			redirectWithError(w, r, RouteIndex, "Sign in failed, please try again")
			return
		}

		authURL, err := s.authn.AuthCodeURL(ctx, flow)
		if err != nil {
			logger.Error().Err(err).Msg("building authorization URL failed")
			redirectWithError(w, r, RouteIndex, "Sign in is not available right now, please try again")
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// OAuthCallbackHandler exchanges the authorization code and creates the session cookies.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx)

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteIndex, "Invalid sign in response")
			return
		}
		if providerErr := r.Form.Get("error"); providerErr != "" {
			logger.Warn().Str("error", providerErr).Str("description", r.Form.Get("error_description")).Msg("provider returned an error")
			redirectWithError(w, r, RouteIndex, "Sign in was not completed")
			return
		}

		state := r.Form.Get("state")
		code := r.Form.Get("code")
		if state == "" || code == "" {
			redirectWithError(w, r, RouteIndex, "Invalid sign in response")
			return
		}

		flowState, err := s.authFlows.Consume(ctx, state)
		if err != nil {
			logger.Warn().Err(err).Msg("unknown login state")
			redirectWithError(w, r, RouteIndex, "Your sign in expired, please try again")
			return
		}

		login, err := s.authn.Exchange(ctx, code, identity.LoginFlow{
			State:    state,
			Nonce:    flowState.Nonce,
			Verifier: flowState.CodeVerifier,
		})
		if err != nil {
			logger.Error().Err(err).Msg("code exchange failed")
			redirectWithError(w, r, RouteIndex, "Sign in failed, please try again")
			return
		}

		s.authn.StoreLogin(w, r, login)
		store := s.tokenStore(w, r)
		maxAge := s.sessionMaxAge()
		if err := store.Set(tokens.Access, login.AccessToken, maxAge); err != nil {
			logger.Error().Err(err).Msg("storing access token failed")
		}
		if login.RefreshToken != "" {
			if err := store.Set(tokens.Refresh, login.RefreshToken, maxAge); err != nil {
				logger.Error().Err(err).Msg("storing refresh token failed")
			}
		}
		logger.Info().Str("user_id", login.UserID).Msg("user signed in")

		returnURL := flowState.ReturnURL
		if returnURL == "" {
			returnURL = RouteOnboarding
		}
		redirectSuccess(w, r, returnURL)
	}
}

// LogoutHandler ends the session locally and at the provider.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens.ClearAll(s.tokenStore(w, r))
		if err := s.authn.ForRequest(w, r).Logout(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("provider logout failed")
		}
		redirectSuccess(w, r, RouteIndex)
	}
}
