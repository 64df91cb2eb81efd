package onboarding_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/datastore"
	"github.com/jrsteele09/go-onboarding-server/datastore/datastorefake"
	"github.com/jrsteele09/go-onboarding-server/internal/utils"
	"github.com/jrsteele09/go-onboarding-server/onboarding"
	"github.com/jrsteele09/go-onboarding-server/session/navigatorfake"
	"github.com/jrsteele09/go-onboarding-server/token/validatorfake"
	"github.com/jrsteele09/go-onboarding-server/tokens/storefake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type flowFixture struct {
	factory   *datastorefake.FakeFactory
	validator *validatorfake.FakeValidator
	navigator *navigatorfake.FakeNavigator
	logs      *bytes.Buffer
	ctx       context.Context
	flow      *onboarding.Flow
}

func setupFlow(t *testing.T, accessValid bool) *flowFixture {
	t.Helper()
	f := &flowFixture{
		factory:   datastorefake.NewFakeFactory(),
		validator: validatorfake.NewFakeValidator(accessValid, true),
		navigator: navigatorfake.NewFakeNavigator(),
		logs:      &bytes.Buffer{},
	}
	f.ctx = zerolog.New(f.logs).WithContext(context.Background())
	f.flow = onboarding.NewFlow(onboarding.Deps{
		Factory:   f.factory,
		Validator: f.validator,
		Store:     storefake.NewFakeStore().WithTokens("access-1", "refresh-1"),
		Navigator: f.navigator,
	})
	return f
}

func TestFlow_Submit_Success(t *testing.T) {
	f := setupFlow(t, true)

	outcome := f.flow.Submit(f.ctx, validForm(), "u1", utils.Ptr("+100000"))

	require.Equal(t, onboarding.OutcomeUpdated, outcome)
	require.Equal(t, []string{"access-1"}, f.factory.Tokens)
	require.Len(t, f.factory.Updates, 1)

	update := f.factory.Updates[0]
	require.Equal(t, "users", update.Table)
	require.Equal(t, datastore.Match{Column: "id", Value: "u1"}, update.Match)
	require.Equal(t, map[string]any{
		"name":                 "Ana",
		"family_name":          "Ruiz",
		"village_neighborhood": "Centro",
		"phone_number":         "+100000",
		"email":                "ana@example.com",
		"onboarded":            true,
	}, update.Fields)
	require.Equal(t, []string{"/proposals/"}, f.navigator.Paths)
	require.Empty(t, f.logs.String())
}

func TestFlow_Submit_MutationErrorStillNavigates(t *testing.T) {
	f := setupFlow(t, true)
	f.factory.Err = errors.New("duplicate key value violates unique constraint")

	outcome := f.flow.Submit(f.ctx, validForm(), "u1", utils.Ptr("+100000"))

	require.Equal(t, onboarding.OutcomeFailed, outcome)
	require.Len(t, f.factory.Updates, 1)
	require.Equal(t, []string{"/proposals/"}, f.navigator.Paths)
	require.Contains(t, f.logs.String(), "duplicate key value violates unique constraint")
	require.Contains(t, f.logs.String(), `"user_id":"u1"`)
}

func TestFlow_Submit_InvalidAccessTokenSkips(t *testing.T) {
	f := setupFlow(t, false)

	outcome := f.flow.Submit(f.ctx, validForm(), "u1", nil)

	require.Equal(t, onboarding.OutcomeSkipped, outcome)
	require.Empty(t, f.factory.Tokens, "no client is built")
	require.Empty(t, f.factory.Updates)
	require.Empty(t, f.navigator.Paths)
	require.Empty(t, f.logs.String())
}

func TestFlow_Submit_MissingPhoneIsOmitted(t *testing.T) {
	f := setupFlow(t, true)

	f.flow.Submit(f.ctx, validForm(), "u1", nil)

	require.Len(t, f.factory.Updates, 1)
	_, present := f.factory.Updates[0].Fields["phone_number"]
	require.False(t, present)
}

func TestFlow_Submit_CustomTableAndRoute(t *testing.T) {
	f := setupFlow(t, true)
	flow := onboarding.NewFlow(onboarding.Deps{
		Factory:   f.factory,
		Validator: f.validator,
		Store:     storefake.NewFakeStore().WithTokens("access-2", ""),
		Navigator: f.navigator,
		Table:     "profiles",
		NextRoute: "/home",
	})

	flow.Submit(f.ctx, validForm(), "u2", nil)

	require.Equal(t, "profiles", f.factory.Updates[0].Table)
	require.Equal(t, "access-2", f.factory.Updates[0].AccessToken)
	require.Equal(t, []string{"/home"}, f.navigator.Paths)
}
