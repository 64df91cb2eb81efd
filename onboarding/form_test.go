package onboarding_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/onboarding"
	"github.com/stretchr/testify/require"
)

func validForm() onboarding.Form {
	return onboarding.Form{
		GivenName:           "Ana",
		FamilyName:          "Ruiz",
		VillageNeighborhood: "Centro",
		Email:               "ana@example.com",
	}
}

func TestForm_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.Empty(t, validForm().Validate())
		require.True(t, onboarding.EvaluateForm(validForm()).Valid)
	})

	t.Run("each required field", func(t *testing.T) {
		cases := map[onboarding.Field]string{
			onboarding.FieldGivenName:           "Given Name required",
			onboarding.FieldFamilyName:          "Last Name required",
			onboarding.FieldVillageNeighborhood: "Village or Neighborhood is required",
			onboarding.FieldEmail:               "Email is required",
		}
		for field, msg := range cases {
			values := url.Values{}
			for _, f := range onboarding.Fields {
				values.Set(string(f), validForm().Value(f))
			}
			values.Set(string(field), "  ")

			state := onboarding.EvaluateForm(onboarding.FormFromValues(values))
			require.False(t, state.Valid, field)
			require.Equal(t, msg, state.Error(field))
			require.Len(t, state.Errors, 1)
		}
	})

	t.Run("all empty", func(t *testing.T) {
		state := onboarding.EvaluateForm(onboarding.Form{})
		require.False(t, state.Valid)
		require.Len(t, state.Errors, 4)
	})
}

func TestValidateField_Email(t *testing.T) {
	valid := []string{"ana@example.com", "a@b.c", "x y@z.co", "first.last@sub.domain.org"}
	for _, email := range valid {
		require.Empty(t, onboarding.ValidateField(onboarding.FieldEmail, email), email)
	}

	invalid := []string{"ana", "ana@example", "@example.com", "ana@.com", "ana example.com"}
	for _, email := range invalid {
		require.Equal(t, "Entered value does not match email format", onboarding.ValidateField(onboarding.FieldEmail, email), email)
	}
}

func TestValidateField_UnknownField(t *testing.T) {
	require.Empty(t, onboarding.ValidateField(onboarding.Field("avatar"), ""))
}

func TestBlankFormState(t *testing.T) {
	state := onboarding.BlankFormState()
	require.False(t, state.Valid)
	require.Empty(t, state.Errors)
}

func TestNewProfileUpdate(t *testing.T) {
	update := onboarding.NewProfileUpdate(validForm(), nil)
	require.Equal(t, "Ana", update.Name)
	require.Equal(t, "Ruiz", update.FamilyName)
	require.Equal(t, "Centro", update.VillageNeighborhood)
	require.Nil(t, update.PhoneNumber)
	require.True(t, update.Onboarded)
}
