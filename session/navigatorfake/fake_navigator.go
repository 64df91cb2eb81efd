package navigatorfake

import (
	"sync"

	"github.com/jrsteele09/go-onboarding-server/session"
)

var _ session.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records every navigation request.
type FakeNavigator struct {
	lock  sync.Mutex
	Paths []string
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (f *FakeNavigator) Navigate(path string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Paths = append(f.Paths, path)
}

func (f *FakeNavigator) Navigated() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.Paths) > 0
}
