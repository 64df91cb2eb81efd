package authflowrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "onboarding:authflow:"

// RedisRepo keeps login flow state in Redis so any instance can finish a login.
type RedisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ Repo = (*RedisRepo)(nil)

func NewRedisRepo(client redis.UniversalClient, ttl time.Duration) *RedisRepo {
	return &RedisRepo{client: client, ttl: ttl}
}

func (r *RedisRepo) Upsert(ctx context.Context, state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil {
		return errors.New("authState cannot be nil")
	}
	payload, err := json.Marshal(authState)
	if err != nil {
		return fmt.Errorf("marshal auth flow state: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+state, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("persist auth flow state: %w", err)
	}
	return nil
}

func (r *RedisRepo) Consume(ctx context.Context, state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}
	raw, err := r.client.GetDel(ctx, keyPrefix+state).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrStateNotFound
		}
		return nil, fmt.Errorf("consume auth flow state: %w", err)
	}
	var authState AuthFlowState
	if err := json.Unmarshal(raw, &authState); err != nil {
		return nil, fmt.Errorf("decode auth flow state: %w", err)
	}
	return &authState, nil
}
