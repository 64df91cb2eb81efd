package datastorefake

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jrsteele09/go-onboarding-server/datastore"
)

var _ datastore.ClientFactory = (*FakeFactory)(nil)

// Update is one recorded update call. Fields holds the JSON form of what was sent.
type Update struct {
	AccessToken string
	Table       string
	Fields      map[string]any
	Match       datastore.Match
}

// FakeFactory records the tokens clients were created with and every update they issued.
type FakeFactory struct {
	lock    sync.Mutex
	Tokens  []string
	Updates []Update
	Err     error
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{}
}

func (f *FakeFactory) Create(accessToken string) datastore.Updater {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Tokens = append(f.Tokens, accessToken)
	return &fakeClient{factory: f, accessToken: accessToken}
}

type fakeClient struct {
	factory     *FakeFactory
	accessToken string
}

func (c *fakeClient) Update(ctx context.Context, table string, fields any, match datastore.Match) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	c.factory.lock.Lock()
	defer c.factory.lock.Unlock()
	c.factory.Updates = append(c.factory.Updates, Update{
		AccessToken: c.accessToken,
		Table:       table,
		Fields:      decoded,
		Match:       match,
	})
	return c.factory.Err
}
