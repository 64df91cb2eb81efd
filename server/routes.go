package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

func (s *Server) initRoutes() error {
	index, err := s.IndexHandler()
	if err != nil {
		return err
	}
	onboardingGet, err := s.OnboardingGetHandler()
	if err != nil {
		return err
	}
	onboardingPost, err := s.OnboardingPostHandler()
	if err != nil {
		return err
	}
	proposals, err := s.ProposalsHandler()
	if err != nil {
		return err
	}

	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(index, s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare()...)) // For form_post response mode

	// ONBOARDING
	s.RegisterRouteHandler("GET "+RouteOnboarding, ChainMiddleware(onboardingGet, s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteOnboarding, ChainMiddleware(onboardingPost, s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteProposals, ChainMiddleware(proposals, s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPIValidateField, ChainMiddleware(s.ValidateFieldHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPIValidateField, ChainMiddleware(s.ValidateFieldHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
	return nil
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/static/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("file", filePath).Msg("static file not served")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !s.authn.Ready(r.Context()) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"identity provider not ready"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
