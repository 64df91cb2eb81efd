package authflowrepo

import (
	"context"
	"time"
)

// AuthFlowState is what the login handler remembers between sending the user to the
// identity provider and receiving the callback.
type AuthFlowState struct {
	CodeVerifier string    `json:"code_verifier"`
	Nonce        string    `json:"nonce"`
	ReturnURL    string    `json:"return_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repo interface {
	Upsert(ctx context.Context, state string, authState *AuthFlowState) error
	// Consume returns the state and removes it in one step, so a state can finish
	// at most one login. Missing or expired states report ErrStateNotFound.
	Consume(ctx context.Context, state string) (*AuthFlowState, error)
}
