package jwt

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/token"
	"github.com/jrsteele09/go-onboarding-server/tokens"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenInspection is the subset of claims the onboarding flow cares about.
type TokenInspection struct {
	Subject string
	Expiry  time.Time
	Opaque  bool // the value was not a JWT
}

// Validator checks the session tokens held in a tokens.Store.
// Access tokens must be unexpired JWTs, and when a secret is configured their HS256 signature
// must verify. Refresh tokens may be opaque; a JWT refresh token must be unexpired.
type Validator struct {
	store  tokens.Store
	secret []byte
	leeway time.Duration
}

var _ token.Validator = (*Validator)(nil)

type Option func(*Validator)

// WithSecret enables HS256 signature verification of access tokens.
func WithSecret(secret string) Option {
	return func(v *Validator) {
		if secret != "" {
			v.secret = []byte(secret)
		}
	}
}

func WithLeeway(d time.Duration) Option {
	return func(v *Validator) {
		v.leeway = d
	}
}

func NewValidator(store tokens.Store, opts ...Option) *Validator {
	v := &Validator{store: store}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) AccessTokenValid() bool {
	_, err := v.InspectAccessToken()
	return err == nil
}

func (v *Validator) RefreshTokenValid() bool {
	_, err := v.InspectRefreshToken()
	return err == nil
}

// InspectAccessToken validates the stored access token and returns its claims.
func (v *Validator) InspectAccessToken() (*TokenInspection, error) {
	raw, ok := v.store.Get(tokens.Access)
	if !ok {
		return nil, errors.ErrMissingToken
	}

	claims := &jwtlib.RegisteredClaims{}
	if v.secret != nil {
		parsed, err := jwtlib.ParseWithClaims(raw, claims, v.keyFunc,
			jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
			jwtlib.WithLeeway(v.leeway),
			jwtlib.WithTimeFunc(NowTimeFunc),
			jwtlib.WithExpirationRequired(),
		)
		if err != nil || !parsed.Valid {
			if errors.Is(err, jwtlib.ErrTokenExpired) {
				return nil, errors.ErrTokenExpired
			}
			return nil, errors.Wrapf(errors.ErrInvalidToken, "[Validator InspectAccessToken] %v", err)
		}
		return inspection(claims), nil
	}

	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[Validator InspectAccessToken] %v", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[Validator InspectAccessToken] missing exp claim")
	}
	if v.expired(claims.ExpiresAt.Time) {
		return nil, errors.ErrTokenExpired
	}
	return inspection(claims), nil
}

// InspectRefreshToken validates the stored refresh token.
func (v *Validator) InspectRefreshToken() (*TokenInspection, error) {
	raw, ok := v.store.Get(tokens.Refresh)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidRefreshToken, "[Validator InspectRefreshToken] %v", errors.ErrMissingToken)
	}

	if strings.Count(raw, ".") != 2 {
		return &TokenInspection{Opaque: true}, nil
	}

	claims := &jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidRefreshToken, "[Validator InspectRefreshToken] %v", err)
	}
	if claims.ExpiresAt != nil && v.expired(claims.ExpiresAt.Time) {
		return nil, errors.Wrapf(errors.ErrInvalidRefreshToken, "[Validator InspectRefreshToken] %v", errors.ErrTokenExpired)
	}
	return inspection(claims), nil
}

func (v *Validator) keyFunc(t *jwtlib.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return v.secret, nil
}

func (v *Validator) expired(exp time.Time) bool {
	return !NowTimeFunc().Before(exp.Add(v.leeway))
}

func inspection(claims *jwtlib.RegisteredClaims) *TokenInspection {
	ti := &TokenInspection{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		ti.Expiry = claims.ExpiresAt.Time
	}
	return ti
}
