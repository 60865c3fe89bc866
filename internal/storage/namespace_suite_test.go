package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"paymediator/internal/storage"
	"paymediator/pkg/platform/sentinel"
)

// NamespaceSuite is the behavioral contract every Backend must satisfy. The
// in-memory backend runs it as a unit test; Redis and Postgres run it behind
// the integration build tag.
type NamespaceSuite struct {
	suite.Suite
	newBackend func(t *testing.T) storage.Backend
	backend    storage.Backend
	ctx        context.Context
}

func (s *NamespaceSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = s.newBackend(s.T())
}

func (s *NamespaceSuite) ns() storage.Namespace {
	return s.backend.Namespace("test_" + uuid.NewString())
}

func (s *NamespaceSuite) TestGetSetRemove() {
	ns := s.ns()

	_, err := ns.Get(s.ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(ns.Set(s.ctx, "a", []byte(`{"v":1}`)))
	got, err := ns.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.JSONEq(`{"v":1}`, string(got))

	s.Require().NoError(ns.Set(s.ctx, "a", []byte(`{"v":2}`)))
	got, err = ns.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.JSONEq(`{"v":2}`, string(got))

	s.Require().NoError(ns.Remove(s.ctx, "a"))
	_, err = ns.Get(s.ctx, "a")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.NoError(ns.Remove(s.ctx, "a"), "removing an absent key is a no-op")
}

func (s *NamespaceSuite) TestKeysIterateClear() {
	ns := s.ns()
	for _, k := range []string{"k1", "k2", "k3"} {
		s.Require().NoError(ns.Set(s.ctx, k, []byte(`"`+k+`"`)))
	}

	keys, err := ns.Keys(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"k1", "k2", "k3"}, keys)

	seen := map[string]string{}
	s.Require().NoError(ns.Iterate(s.ctx, func(key string, value []byte) error {
		seen[key] = string(value)
		return nil
	}))
	s.Equal(map[string]string{"k1": `"k1"`, "k2": `"k2"`, "k3": `"k3"`}, seen)

	s.Require().NoError(ns.Clear(s.ctx))
	keys, err = ns.Keys(s.ctx)
	s.Require().NoError(err)
	s.Empty(keys)

	s.NoError(ns.Clear(s.ctx), "clearing an empty namespace is a no-op")
}

func (s *NamespaceSuite) TestIterateStopsOnError() {
	ns := s.ns()
	s.Require().NoError(ns.Set(s.ctx, "k1", []byte(`1`)))
	s.Require().NoError(ns.Set(s.ctx, "k2", []byte(`2`)))

	stop := errors.New("stop")
	calls := 0
	err := ns.Iterate(s.ctx, func(string, []byte) error {
		calls++
		return stop
	})
	s.ErrorIs(err, stop)
	s.Equal(1, calls)
}

func (s *NamespaceSuite) TestNamespacesAreIsolated() {
	a := s.ns()
	b := s.ns()
	s.Require().NoError(a.Set(s.ctx, "shared", []byte(`"a"`)))

	_, err := b.Get(s.ctx, "shared")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(b.Clear(s.ctx))
	got, err := a.Get(s.ctx, "shared")
	s.Require().NoError(err)
	s.Equal(`"a"`, string(got))
}

func (s *NamespaceSuite) TestJSONHelpers() {
	type item struct {
		Name string `json:"name"`
	}
	ns := s.ns()
	s.Require().NoError(storage.SetJSON(s.ctx, ns, "x", item{Name: "Wallet"}))

	got, err := storage.GetJSON[item](s.ctx, ns, "x")
	s.Require().NoError(err)
	s.Equal("Wallet", got.Name)

	var names []string
	s.Require().NoError(storage.IterateJSON(s.ctx, ns, func(_ string, v *item) error {
		names = append(names, v.Name)
		return nil
	}))
	s.Equal([]string{"Wallet"}, names)

	_, err = storage.GetJSON[item](s.ctx, ns, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestMemoryBackend(t *testing.T) {
	suite.Run(t, &NamespaceSuite{newBackend: func(*testing.T) storage.Backend {
		return storage.NewMemoryBackend()
	}})
}

func TestMemoryBackend_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	ns := storage.NewMemoryBackend().Namespace("ordered")
	for _, k := range []string{"c", "a", "b"} {
		if err := ns.Set(ctx, k, []byte(`0`)); err != nil {
			t.Fatal(err)
		}
	}
	_ = ns.Set(ctx, "a", []byte(`1`))
	_ = ns.Remove(ctx, "c")

	keys, err := ns.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected key order %v", keys)
	}
}
