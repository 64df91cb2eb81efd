package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-onboarding-server/datastore"
	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/internal/config"
	"github.com/jrsteele09/go-onboarding-server/internal/metrics"
	"github.com/jrsteele09/go-onboarding-server/server"
	"github.com/jrsteele09/go-onboarding-server/server/authflowrepo"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server, restarting")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	authFlows, closeAuthFlows := newAuthFlowRepo(c)
	defer closeAuthFlows()

	authn := identity.NewOIDC(identity.OIDCConfig{
		IssuerURL:    c.GetIssuerURL(),
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURL:  c.GetRedirectURL(),
		Scopes:       c.GetScopes(),
		CookieName:   c.GetIdentityCookie(),
		CookieMaxAge: int(c.GetSessionMaxAge().Seconds()),
	})
	// Discover before the first visitor so requests do not race the initial attempt.
	go authn.Ready(context.Background())

	if c.GetAccessTokenSecret() != "" {
		log.Info().Msg("Access tokens must be HS256 signed with SUPABASE_JWT_SECRET, other tokens skip submission")
	}

	m := metrics.New()
	factory := datastore.NewFactory(c.GetDataStoreURL(), c.GetDataStoreKey(),
		datastore.WithTransport(m.InstrumentTransport(http.DefaultTransport)))

	handler, err := server.New(c, server.Deps{
		Authenticator: authn,
		Factory:       factory,
		AuthFlows:     authFlows,
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// newAuthFlowRepo keeps login state in Redis when REDIS_ADDR is set so that several
// instances can share it, and in memory otherwise.
func newAuthFlowRepo(c config.Config) (authflowrepo.Repo, func()) {
	ttl := c.GetLoginFlowTimeout()
	if c.GetRedisAddr() == "" {
		return authflowrepo.NewInMemoryRepo(ttl), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     c.GetRedisAddr(),
		Password: c.GetRedisPassword(),
	})
	log.Info().Str("addr", c.GetRedisAddr()).Msg("Login flow state stored in Redis")
	return authflowrepo.NewRedisRepo(client, ttl), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis client")
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
