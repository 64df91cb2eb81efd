package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/internal/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const (
	discoveryRetryInterval = 10 * time.Second
	discoveryTimeout       = 10 * time.Second
)

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	CookieName   string // holds the raw ID token
	CookieMaxAge int
}

// OIDC is an Authenticator backed by an OpenID Connect provider.
// Discovery happens lazily; until it succeeds the provider reports not ready.
type OIDC struct {
	cfg OIDCConfig

	lock          sync.RWMutex
	discovering   sync.Mutex // held for the duration of one discovery attempt
	oauth2Config  *oauth2.Config
	verifier      *oidc.IDTokenVerifier
	lastAttempt   time.Time
	lastDiscovery error
}

var _ Authenticator = (*OIDC)(nil)

func NewOIDC(cfg OIDCConfig) *OIDC {
	return &OIDC{cfg: cfg}
}

// NewStaticOIDC skips discovery and uses the given verifier and endpoint.
func NewStaticOIDC(cfg OIDCConfig, verifier *oidc.IDTokenVerifier, endpoint oauth2.Endpoint) *OIDC {
	o := &OIDC{cfg: cfg, verifier: verifier}
	o.oauth2Config = o.newOAuth2Config(endpoint)
	return o
}

func (o *OIDC) newOAuth2Config(endpoint oauth2.Endpoint) *oauth2.Config {
	scopes := o.cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID}
	}
	return &oauth2.Config{
		ClientID:     o.cfg.ClientID,
		ClientSecret: o.cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  o.cfg.RedirectURL,
		Scopes:       scopes,
	}
}

// discover fetches the provider metadata once. Only one request runs discovery at a time;
// the others report not ready instead of waiting on the network. Failures are remembered
// for discoveryRetryInterval.
func (o *OIDC) discover(ctx context.Context) error {
	if o.discovered() {
		return nil
	}
	if o.cfg.IssuerURL == "" {
		return errors.Wrapf(errors.ErrProviderNotReady, "[OIDC discover] issuer not configured")
	}

	o.lock.RLock()
	lastAttempt, lastErr := o.lastAttempt, o.lastDiscovery
	o.lock.RUnlock()
	if lastErr != nil && NowTimeFunc().Sub(lastAttempt) < discoveryRetryInterval {
		return lastErr
	}

	if !o.discovering.TryLock() {
		return errors.Wrapf(errors.ErrProviderNotReady, "[OIDC discover] discovery in progress")
	}
	defer o.discovering.Unlock()
	if o.discovered() {
		return nil
	}

	// The provider keeps this context for later key set refreshes, so it must outlive the request.
	discoveryCtx := oidc.ClientContext(context.WithoutCancel(ctx), &http.Client{Timeout: discoveryTimeout})
	provider, err := oidc.NewProvider(discoveryCtx, o.cfg.IssuerURL)

	o.lock.Lock()
	defer o.lock.Unlock()
	if err != nil {
		wrapped := errors.Wrapf(errors.ErrProviderNotReady, "[OIDC discover] %v", err)
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			o.lastAttempt = NowTimeFunc()
			o.lastDiscovery = wrapped
		}
		log.Err(err).Str("issuer", o.cfg.IssuerURL).Msg("OIDC discovery failed")
		return wrapped
	}
	o.oauth2Config = o.newOAuth2Config(provider.Endpoint())
	o.verifier = provider.Verifier(&oidc.Config{ClientID: o.cfg.ClientID, Now: NowTimeFunc})
	o.lastDiscovery = nil
	return nil
}

func (o *OIDC) discovered() bool {
	o.lock.RLock()
	defer o.lock.RUnlock()
	return o.verifier != nil
}

func (o *OIDC) Ready(ctx context.Context) bool {
	return o.discover(ctx) == nil
}

type idClaims struct {
	Sub         string `json:"sub"`
	Nonce       string `json:"nonce"`
	PhoneNumber string `json:"phone_number"`
}

func (o *OIDC) verify(ctx context.Context, rawIDToken string) (*idClaims, error) {
	if err := o.discover(ctx); err != nil {
		return nil, err
	}
	o.lock.RLock()
	verifier := o.verifier
	o.lock.RUnlock()

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[OIDC verify] %v", err)
	}
	var claims idClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[OIDC verify] claims: %v", err)
	}
	return &claims, nil
}

func (o *OIDC) AuthCodeURL(ctx context.Context, flow LoginFlow) (string, error) {
	if err := o.discover(ctx); err != nil {
		return "", err
	}
	o.lock.RLock()
	cfg := o.oauth2Config
	o.lock.RUnlock()
	return cfg.AuthCodeURL(flow.State, oauth2.S256ChallengeOption(flow.Verifier), oidc.Nonce(flow.Nonce)), nil
}

func (o *OIDC) Exchange(ctx context.Context, code string, flow LoginFlow) (*Login, error) {
	if err := o.discover(ctx); err != nil {
		return nil, err
	}
	o.lock.RLock()
	cfg := o.oauth2Config
	o.lock.RUnlock()

	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(flow.Verifier))
	if err != nil {
		return nil, fmt.Errorf("[OIDC Exchange] token exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.ErrMissingIDToken
	}
	claims, err := o.verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	if claims.Nonce != flow.Nonce {
		return nil, errors.ErrInvalidNonce
	}

	return &Login{
		UserID:       claims.Sub,
		IDToken:      rawIDToken,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// ForRequest binds the provider to the ID token cookie of r.
func (o *OIDC) ForRequest(w http.ResponseWriter, r *http.Request) Provider {
	return &cookieProvider{oidc: o, w: w, r: r}
}

// StoreLogin writes the ID token cookie after a successful exchange.
func (o *OIDC) StoreLogin(w http.ResponseWriter, r *http.Request, login *Login) {
	setIDCookie(w, o.cfg.CookieName, login.IDToken, o.cfg.CookieMaxAge, isSecure(r))
}

type cookieProvider struct {
	oidc *OIDC
	w    http.ResponseWriter
	r    *http.Request
}

func (p *cookieProvider) AuthState(ctx context.Context) AuthState {
	if !p.oidc.Ready(ctx) {
		return AuthState{}
	}
	state := AuthState{Ready: true}

	cookie, err := p.r.Cookie(p.oidc.cfg.CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return state
	}
	claims, err := p.oidc.verify(ctx, cookie.Value)
	if err != nil {
		return state
	}

	state.Authenticated = true
	state.UserID = claims.Sub
	if claims.PhoneNumber != "" {
		state.PhoneNumber = utils.Ptr(claims.PhoneNumber)
	}
	return state
}

func (p *cookieProvider) Logout(ctx context.Context) error {
	setIDCookie(p.w, p.oidc.cfg.CookieName, "", -1, isSecure(p.r))
	return nil
}

func setIDCookie(w http.ResponseWriter, name, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
