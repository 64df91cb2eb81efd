package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-onboarding-server/datastore"
	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/internal/config"
	"github.com/jrsteele09/go-onboarding-server/internal/metrics"
	"github.com/jrsteele09/go-onboarding-server/server/authflowrepo"
	"github.com/jrsteele09/go-onboarding-server/server/ui"
)

// Deps are the long-lived collaborators the server is built from.
type Deps struct {
	Authenticator identity.Authenticator
	Factory       datastore.ClientFactory
	AuthFlows     authflowrepo.Repo
	Metrics       *metrics.Metrics
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	authn     identity.Authenticator
	factory   datastore.ClientFactory
	authFlows authflowrepo.Repo
	metrics   *metrics.Metrics
}

func New(config config.Config, deps Deps) (*Server, error) {
	if deps.Authenticator == nil {
		return nil, fmt.Errorf("[Server New] authenticator is required")
	}
	if deps.Factory == nil {
		return nil, fmt.Errorf("[Server New] data store factory is required")
	}
	if deps.AuthFlows == nil {
		deps.AuthFlows = authflowrepo.NewInMemoryRepo(config.GetLoginFlowTimeout())
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		authn:     deps.Authenticator,
		factory:   deps.Factory,
		authFlows: deps.AuthFlows,
		metrics:   deps.Metrics,
	}
	s.env = config.GetEnv()

	if err := s.initRoutes(); err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := ui.MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ui.ResetColor
	} else {
		displayMethod = ui.Gray + paddedMethod + ui.ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
