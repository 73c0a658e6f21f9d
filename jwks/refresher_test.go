package jwks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halprotocol/jwtguard/jwk"
)

type fakeFetcher struct {
	fetches atomic.Int32
	fail    atomic.Bool
	keys    jwk.Set
}

func (f *fakeFetcher) Fetch(_ context.Context) (jwk.Set, error) {
	f.fetches.Add(1)
	if f.fail.Load() {
		return nil, errors.New("fetch failed")
	}
	return f.keys, nil
}

func testKeySet(kid string) jwk.Set {
	return jwk.Set{&jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: kid}, Bytes: []byte("secret-material")}}
}

func TestNewRefresher_SucceedsOnFirstFetch(t *testing.T) {
	f := &fakeFetcher{keys: testKeySet("a")}
	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond

	r, err := NewRefresher(context.Background(), f, cfg)
	require.NoError(t, err)

	keys, err := r.Keys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, "a", keys[0].ID())
}

func TestNewRefresher_RetriesThenSucceeds(t *testing.T) {
	f := &fakeFetcher{keys: testKeySet("a")}
	f.fail.Store(true)

	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxInitialRetries = 10

	done := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		f.fail.Store(false)
		close(done)
	}()

	r, err := NewRefresher(context.Background(), f, cfg)
	<-done
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestNewRefresher_ExhaustsRetriesAndFails(t *testing.T) {
	f := &fakeFetcher{}
	f.fail.Store(true)

	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxInitialRetries = 2

	_, err := NewRefresher(context.Background(), f, cfg)
	require.Error(t, err)
}

func TestRefreshNow_RetainsLastKnownGoodOnFailure(t *testing.T) {
	f := &fakeFetcher{keys: testKeySet("a")}
	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MinRefreshInterval = 0

	r, err := NewRefresher(context.Background(), f, cfg)
	require.NoError(t, err)

	f.fail.Store(true)
	r.RefreshNow(context.Background())

	keys, err := r.Keys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, "a", keys[0].ID())
}

func TestRefreshNow_RateLimited(t *testing.T) {
	f := &fakeFetcher{keys: testKeySet("a")}
	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MinRefreshInterval = time.Hour

	r, err := NewRefresher(context.Background(), f, cfg)
	require.NoError(t, err)

	before := f.fetches.Load()
	r.RefreshNow(context.Background())
	require.Equal(t, before, f.fetches.Load())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	f := &fakeFetcher{keys: testKeySet("a")}
	cfg := DefaultRefresherConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.RefreshInterval = time.Millisecond

	r, err := NewRefresher(context.Background(), f, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
