package validatorfake

import "github.com/jrsteele09/go-onboarding-server/token"

var _ token.Validator = (*FakeValidator)(nil)

// FakeValidator returns fixed validity answers and counts how often it was asked.
type FakeValidator struct {
	Access  bool
	Refresh bool

	AccessChecks  int
	RefreshChecks int
}

func NewFakeValidator(access, refresh bool) *FakeValidator {
	return &FakeValidator{Access: access, Refresh: refresh}
}

func (f *FakeValidator) AccessTokenValid() bool {
	f.AccessChecks++
	return f.Access
}

func (f *FakeValidator) RefreshTokenValid() bool {
	f.RefreshChecks++
	return f.Refresh
}
