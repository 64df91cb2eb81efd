package authflowrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// Entries older than ttl are treated as missing.
type InMemoryRepo struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]*AuthFlowState
}

var _ Repo = (*InMemoryRepo)(nil)

func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		ttl:    ttl,
		states: make(map[string]*AuthFlowState),
	}
}

func (r *InMemoryRepo) Upsert(ctx context.Context, state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil {
		return errors.New("authState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	copied := *authState
	r.states[state] = &copied
	return nil
}

func (r *InMemoryRepo) Consume(ctx context.Context, state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	authState, exists := r.states[state]
	if !exists {
		return nil, apperrors.ErrStateNotFound
	}
	delete(r.states, state)
	if r.expired(authState) {
		return nil, apperrors.ErrStateNotFound
	}
	return authState, nil
}

func (r *InMemoryRepo) expired(s *AuthFlowState) bool {
	return r.ttl > 0 && NowTimeFunc().Sub(s.CreatedAt) > r.ttl
}

// pruneLocked drops expired entries so abandoned logins do not accumulate.
func (r *InMemoryRepo) pruneLocked() {
	for k, s := range r.states {
		if r.expired(s) {
			delete(r.states, k)
		}
	}
}
