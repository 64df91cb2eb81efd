// Package onboarding holds the profile completion form and its submission flow.
package onboarding

import (
	"context"

	"github.com/jrsteele09/go-onboarding-server/datastore"
	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/token"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/rs/zerolog"
)

const (
	DefaultProfileTable = "users"
	DefaultNextRoute    = "/proposals/"
	matchColumn         = "id"
)

// Outcome reports what a submission did. It is informational only.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeUpdated Outcome = "updated"
	OutcomeFailed  Outcome = "failed"
)

type Deps struct {
	Factory   datastore.ClientFactory
	Validator token.Validator
	Store     tokens.Store
	Navigator session.Navigator
	Table     string
	NextRoute string
}

// Flow submits a validated onboarding form for one request.
type Flow struct {
	factory   datastore.ClientFactory
	validator token.Validator
	store     tokens.Store
	navigator session.Navigator
	table     string
	nextRoute string
}

func NewFlow(deps Deps) *Flow {
	f := &Flow{
		factory:   deps.Factory,
		validator: deps.Validator,
		store:     deps.Store,
		navigator: deps.Navigator,
		table:     deps.Table,
		nextRoute: deps.NextRoute,
	}
	if f.table == "" {
		f.table = DefaultProfileTable
	}
	if f.nextRoute == "" {
		f.nextRoute = DefaultNextRoute
	}
	return f
}

// Submit writes the profile for userID and moves on to the next route.
//
// With an invalid access token nothing happens. Navigation is requested as soon as
// the update returns, before its error is looked at; a failed update is logged and
// never returned to the caller.
func (f *Flow) Submit(ctx context.Context, form Form, userID string, phoneNumber *string) Outcome {
	outcome, err := f.submit(ctx, form, userID, phoneNumber)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("user_id", userID).
			Str("table", f.table).
			Msg("onboarding submission failed")
		return OutcomeFailed
	}
	return outcome
}

func (f *Flow) submit(ctx context.Context, form Form, userID string, phoneNumber *string) (Outcome, error) {
	if !f.validator.AccessTokenValid() {
		return OutcomeSkipped, nil
	}

	accessToken, _ := f.store.Get(tokens.Access)
	client := f.factory.Create(accessToken)

	update := NewProfileUpdate(form, phoneNumber)
	err := client.Update(ctx, f.table, update, datastore.Match{Column: matchColumn, Value: userID})

	f.navigator.Navigate(f.nextRoute)

	if err != nil {
		return OutcomeFailed, errors.Wrapf(err, "[Flow submit] update %s for %s", f.table, userID)
	}
	return OutcomeUpdated, nil
}
