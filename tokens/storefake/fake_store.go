package storefake

import (
	"sync"

	"github.com/jrsteele09/go-onboarding-server/tokens"
)

var _ tokens.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token store that records clears.
type FakeStore struct {
	lock    sync.RWMutex
	values  map[tokens.Name]string
	Cleared []tokens.Name
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[tokens.Name]string)}
}

// WithTokens seeds both tokens, empty strings are left unset.
func (f *FakeStore) WithTokens(access, refresh string) *FakeStore {
	if access != "" {
		f.values[tokens.Access] = access
	}
	if refresh != "" {
		f.values[tokens.Refresh] = refresh
	}
	return f
}

func (f *FakeStore) Get(name tokens.Name) (string, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	v, ok := f.values[name]
	return v, ok
}

func (f *FakeStore) Set(name tokens.Name, value string, _ int) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values[name] = value
	return nil
}

func (f *FakeStore) Clear(name tokens.Name) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.values, name)
	f.Cleared = append(f.Cleared, name)
}
