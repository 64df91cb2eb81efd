package errors

import (
	"errors"
	"fmt"
)

// Common error types for the onboarding server
var (
	// Token errors
	ErrMissingToken        = errors.New("missing token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUnknownToken        = errors.New("unknown token name")

	// Identity provider errors
	ErrProviderNotReady = errors.New("identity provider not ready")
	ErrMissingIDToken   = errors.New("missing id token")
	ErrInvalidNonce     = errors.New("invalid nonce")

	// Login flow errors
	ErrStateNotFound = errors.New("state not found")

	// Data store errors
	ErrMutationFailed = errors.New("mutation failed")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
