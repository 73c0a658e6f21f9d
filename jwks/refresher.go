package jwks

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/halprotocol/jwtguard/jwk"
)

// RefresherConfig controls a Refresher's timing. The zero value is
// not usable directly; use DefaultRefresherConfig as a starting point.
type RefresherConfig struct {
	// InitialBackoff is the first retry delay used while establishing
	// the very first key set; it grows exponentially from there.
	InitialBackoff time.Duration

	// MaxInitialRetries caps how many retries the constructor makes
	// after its first attempt (so at most MaxInitialRetries+1 fetches)
	// before giving up and returning an error.
	MaxInitialRetries uint64

	// RefreshInterval is how often Run ticks a refresh attempt.
	RefreshInterval time.Duration

	// MinRefreshInterval rate-limits refreshes: a tick (or an
	// on-demand RefreshNow call) that lands sooner than this after the
	// last successful refresh is a silent no-op rather than a new
	// fetch.
	MinRefreshInterval time.Duration

	// Logger receives lifecycle events (fetch or refresh succeeded /
	// failed). A rate-limited refresh is skipped without logging. The
	// zero value discards everything.
	Logger zerolog.Logger
}

// DefaultRefresherConfig returns sane defaults: ~1s initial backoff,
// 20 initial retries, refresh every 15 minutes, never more than once
// a minute.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		InitialBackoff:     time.Second,
		MaxInitialRetries:  20,
		RefreshInterval:    15 * time.Minute,
		MinRefreshInterval: time.Minute,
	}
}

// Refresher is a KeyStore backed by a Fetcher that is retried with
// exponential backoff until the first successful fetch, then kept
// current by periodic background refreshes that retain the last
// known good key set across any later fetch failure.
type Refresher struct {
	fetcher Fetcher
	cfg     RefresherConfig

	current     atomic.Pointer[jwk.Set]
	lastRefresh atomic.Int64 // UnixNano
	sf          singleflight.Group
}

// NewRefresher builds a Refresher, blocking on the initial fetch with
// exponential backoff (per cfg.InitialBackoff / cfg.MaxInitialRetries).
// It returns an error only if every initial attempt fails; once it
// returns successfully, Keys never fails again for the lifetime of
// this Refresher.
func NewRefresher(ctx context.Context, fetcher Fetcher, cfg RefresherConfig) (*Refresher, error) {
	r := &Refresher{fetcher: fetcher, cfg: cfg}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(b, cfg.MaxInitialRetries), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		set, err := fetcher.Fetch(ctx)
		if err != nil {
			r.cfg.Logger.Warn().Err(err).Int("attempt", attempt).Msg("initial jwks fetch failed, retrying")
			return err
		}
		r.publish(set)
		return nil
	}, policy)
	if err != nil {
		return nil, err
	}

	r.cfg.Logger.Info().Int("keys", len(*r.current.Load())).Msg("initial jwks fetch succeeded")
	return r, nil
}

func (r *Refresher) publish(set jwk.Set) {
	r.current.Store(&set)
	r.lastRefresh.Store(time.Now().UnixNano())
}

// Keys returns the last successfully fetched key set. It never
// returns an error once construction has succeeded.
func (r *Refresher) Keys(_ context.Context) ([]jwk.Key, error) {
	return *r.current.Load(), nil
}

// RefreshNow triggers an out-of-band refresh attempt, coalescing with
// any refresh already in flight (including a concurrent tick from
// Run) via singleflight. A failed attempt logs and leaves the current
// key set untouched; it is not propagated as an error to callers that
// merely wanted fresher keys, since the retained set is still valid.
// A refresh landing within MinRefreshInterval of the last success is
// a silent no-op.
func (r *Refresher) RefreshNow(ctx context.Context) {
	if time.Since(time.Unix(0, r.lastRefresh.Load())) < r.cfg.MinRefreshInterval {
		return
	}

	_, _, _ = r.sf.Do("refresh", func() (any, error) {
		set, err := r.fetcher.Fetch(ctx)
		if err != nil {
			r.cfg.Logger.Warn().Err(err).Msg("jwks refresh failed, keeping last known good key set")
			return nil, nil
		}
		r.publish(set)
		r.cfg.Logger.Info().Int("keys", len(set)).Msg("jwks refreshed")
		return nil, nil
	})
}

// Run ticks RefreshNow every cfg.RefreshInterval until ctx is
// cancelled. Callers typically launch it from an errgroup.Group so
// its termination is tied to the rest of the application's lifetime:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return refresher.Run(ctx) })
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.RefreshNow(ctx)
		}
	}
}
