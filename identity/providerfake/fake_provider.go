package providerfake

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/internal/utils"
)

var _ identity.Provider = (*FakeProvider)(nil)
var _ identity.Authenticator = (*FakeAuthenticator)(nil)

// FakeProvider returns a fixed AuthState and records logouts.
type FakeProvider struct {
	lock      sync.Mutex
	State     identity.AuthState
	LogoutErr error
	Logouts   int
}

func NewFakeProvider(state identity.AuthState) *FakeProvider {
	return &FakeProvider{State: state}
}

// Authenticated is a ready, authenticated state for userID.
func Authenticated(userID, phone string) identity.AuthState {
	state := identity.AuthState{Ready: true, Authenticated: true, UserID: userID}
	if phone != "" {
		state.PhoneNumber = utils.Ptr(phone)
	}
	return state
}

func (f *FakeProvider) AuthState(ctx context.Context) identity.AuthState {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.State
}

func (f *FakeProvider) Logout(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Logouts++
	f.State.Authenticated = false
	return f.LogoutErr
}

// FakeAuthenticator hands the same FakeProvider to every request.
type FakeAuthenticator struct {
	Provider *FakeProvider
	AuthURL  string
	Login    *identity.Login

	lock   sync.Mutex
	Flows  []identity.LoginFlow
	Stored []*identity.Login
}

func NewFakeAuthenticator(provider *FakeProvider) *FakeAuthenticator {
	return &FakeAuthenticator{Provider: provider, AuthURL: "https://id.example.com/authorize"}
}

func (f *FakeAuthenticator) Ready(ctx context.Context) bool {
	return f.Provider.AuthState(ctx).Ready
}

func (f *FakeAuthenticator) ForRequest(w http.ResponseWriter, r *http.Request) identity.Provider {
	return f.Provider
}

func (f *FakeAuthenticator) AuthCodeURL(ctx context.Context, flow identity.LoginFlow) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Flows = append(f.Flows, flow)
	q := url.Values{}
	q.Set("state", flow.State)
	q.Set("nonce", flow.Nonce)
	return f.AuthURL + "?" + q.Encode(), nil
}

func (f *FakeAuthenticator) Exchange(ctx context.Context, code string, flow identity.LoginFlow) (*identity.Login, error) {
	if f.Login == nil || code == "" {
		return nil, errors.New("exchange failed")
	}
	return f.Login, nil
}

func (f *FakeAuthenticator) StoreLogin(w http.ResponseWriter, r *http.Request, login *identity.Login) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Stored = append(f.Stored, login)
}
