package auth

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	reposqlite "PartnerApp/internal/cli/repo/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := reposqlite.Open(filepath.Join(t.TempDir(), "client.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// пустое хранилище — пустая пара без ошибки
	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Pair{}, p)

	want := Pair{AccessToken: "A1", RefreshToken: "R1"}
	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// повторное сохранение той же пары ничего не меняет
	require.NoError(t, s.Save(ctx, want))
	got, _ = s.Load(ctx)
	assert.Equal(t, want, got)

	at, _ := s.AccessToken(ctx)
	rt, _ := s.RefreshToken(ctx)
	assert.Equal(t, "A1", at)
	assert.Equal(t, "R1", rt)
}

func TestStore_RejectsHalfPair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, Pair{AccessToken: "A1"}), ErrIncompletePair)
	assert.ErrorIs(t, s.SaveSession(ctx, Pair{RefreshToken: "R1"}, Identity{}), ErrIncompletePair)
	assert.ErrorIs(t, s.Rotate(ctx, "R1", Pair{AccessToken: "A2"}), ErrIncompletePair)

	p, _ := s.Load(ctx)
	assert.Equal(t, Pair{}, p)
}

func TestStore_SaveSessionAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"},
		Identity{PartnerID: "p-1", Name: "Ravi", Phone: "+919999999999"}))

	id, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, Identity{PartnerID: "p-1", Name: "Ravi", Phone: "+919999999999"}, id)

	require.NoError(t, s.Clear(ctx))
	p, _ := s.Load(ctx)
	assert.Equal(t, Pair{}, p)
	id, _ = s.Identity(ctx)
	assert.Equal(t, Identity{}, id)
}

func TestStore_Rotate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Pair{AccessToken: "A0", RefreshToken: "R1"}))

	// устаревший refresh — запись не выполняется
	err := s.Rotate(ctx, "R0", Pair{AccessToken: "AX", RefreshToken: "RX"})
	assert.ErrorIs(t, err, ErrCredentialsChanged)

	require.NoError(t, s.Rotate(ctx, "R1", Pair{AccessToken: "A2", RefreshToken: "R2"}))
	p, _ := s.Load(ctx)
	assert.Equal(t, Pair{AccessToken: "A2", RefreshToken: "R2"}, p)

	// после logout Rotate не должен воскрешать токены
	require.NoError(t, s.Clear(ctx))
	err = s.Rotate(ctx, "R2", Pair{AccessToken: "A3", RefreshToken: "R3"})
	assert.ErrorIs(t, err, ErrCredentialsChanged)
	p, _ = s.Load(ctx)
	assert.Equal(t, Pair{}, p)
}

func TestStore_ConcurrentReadersSeeWholePairs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Pair{AccessToken: "A0", RefreshToken: "R0"}))

	pairs := []Pair{{"A1", "R1"}, {"A2", "R2"}, {"A3", "R3"}}
	var wg sync.WaitGroup
	for _, p := range pairs {
		wg.Add(1)
		go func(p Pair) {
			defer wg.Done()
			_ = s.Save(ctx, p)
		}(p)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Load(ctx)
			if assert.NoError(t, err) {
				// номер access и refresh всегда совпадает
				assert.Equal(t, got.AccessToken[1:], got.RefreshToken[1:])
			}
		}()
	}
	wg.Wait()
}
