package onboarding

import (
	"net/url"
	"regexp"
	"strings"
)

type Field string

const (
	FieldGivenName           Field = "givenName"
	FieldFamilyName          Field = "familyName"
	FieldVillageNeighborhood Field = "villageNeighborhood"
	FieldEmail               Field = "email"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldGivenName, FieldFamilyName, FieldVillageNeighborhood, FieldEmail}

var requiredMessages = map[Field]string{
	FieldGivenName:           "Given Name required",
	FieldFamilyName:          "Last Name required",
	FieldVillageNeighborhood: "Village or Neighborhood is required",
	FieldEmail:               "Email is required",
}

const emailFormatMessage = "Entered value does not match email format"

// Unanchored on purpose: any value containing the shape passes.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type Form struct {
	GivenName           string
	FamilyName          string
	VillageNeighborhood string
	Email               string
}

// FormFromValues reads the posted fields, trimming surrounding whitespace.
func FormFromValues(values url.Values) Form {
	get := func(f Field) string {
		return strings.TrimSpace(values.Get(string(f)))
	}
	return Form{
		GivenName:           get(FieldGivenName),
		FamilyName:          get(FieldFamilyName),
		VillageNeighborhood: get(FieldVillageNeighborhood),
		Email:               get(FieldEmail),
	}
}

func (f Form) Value(field Field) string {
	switch field {
	case FieldGivenName:
		return f.GivenName
	case FieldFamilyName:
		return f.FamilyName
	case FieldVillageNeighborhood:
		return f.VillageNeighborhood
	case FieldEmail:
		return f.Email
	}
	return ""
}

// FieldErrors maps a field to its validation message.
type FieldErrors map[Field]string

// ValidateField returns the message for value, or "" when it is acceptable.
// Unknown fields are always acceptable.
func ValidateField(field Field, value string) string {
	msg, known := requiredMessages[field]
	if !known {
		return ""
	}
	if strings.TrimSpace(value) == "" {
		return msg
	}
	if field == FieldEmail && !emailPattern.MatchString(value) {
		return emailFormatMessage
	}
	return ""
}

func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	for _, field := range Fields {
		if msg := ValidateField(field, f.Value(field)); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// FormState is the container the form template renders from.
// Errors only holds messages that should be shown; Valid is derived from all fields.
type FormState struct {
	Values Form
	Errors FieldErrors
	Valid  bool
}

// BlankFormState is the state of a fresh, untouched form.
func BlankFormState() FormState {
	return FormState{Errors: FieldErrors{}, Valid: false}
}

// EvaluateForm validates every field and exposes all messages.
func EvaluateForm(form Form) FormState {
	errs := form.Validate()
	return FormState{
		Values: form,
		Errors: errs,
		Valid:  len(errs) == 0,
	}
}

func (s FormState) Error(field Field) string {
	return s.Errors[field]
}
