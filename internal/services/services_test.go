package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/db"
)

type staticSource struct {
	cols *db.Collections
}

func (s staticSource) Collections(context.Context) (*db.Collections, error) {
	return s.cols, nil
}

func sourceFor(mt *mtest.T) staticSource {
	return staticSource{cols: db.CollectionsFor(mt.DB)}
}

// failingSource fails the test's expectations if a store call is attempted.
type failingSource struct {
	calls int
}

func (f *failingSource) Collections(context.Context) (*db.Collections, error) {
	f.calls++
	return nil, errors.New("store unavailable")
}

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

type recordingCache struct {
	roles       map[string]string
	gens        map[string]int64
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{roles: map[string]string{}, gens: map[string]int64{}}
}

func (c *recordingCache) Get(_ context.Context, email string) (string, int64, bool) {
	role, ok := c.roles[email]
	return role, c.gens[email], ok
}

func (c *recordingCache) Set(_ context.Context, email, role string, gen int64) {
	if c.gens[email] == gen {
		c.roles[email] = role
	}
}

func (c *recordingCache) Invalidate(_ context.Context, email string) {
	delete(c.roles, email)
	c.gens[email]++
	c.invalidated = append(c.invalidated, email)
}

// hookSource runs before on every Collections call.
type hookSource struct {
	staticSource
	before func()
}

func (h hookSource) Collections(ctx context.Context) (*db.Collections, error) {
	h.before()
	return h.staticSource.Collections(ctx)
}

type fakeAccounts struct {
	err     error
	deleted []string
}

func (f *fakeAccounts) DeleteAccountByEmail(_ context.Context, email string) error {
	f.deleted = append(f.deleted, email)
	return f.err
}
