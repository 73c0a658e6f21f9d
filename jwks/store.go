// Package jwks implements key sourcing for JWT verification: a static
// in-memory key store, an HTTP-fetched JWKS source, and a background
// refresh engine that keeps a fetched key set current while tolerating
// transient fetch failures.
package jwks

import (
	"context"

	"github.com/halprotocol/jwtguard/jwk"
)

// KeyStore is the read side a Validator consults to resolve signing
// keys. Keys returns the current key set; a store that fetches keys
// remotely may return an error the first time it is asked before any
// successful fetch has occurred, but a store that has ever returned
// successfully must keep returning its last-known-good set rather
// than fail transiently.
type KeyStore interface {
	Keys(ctx context.Context) ([]jwk.Key, error)
}

// Static is a KeyStore over a fixed, never-refreshed key set, used for
// configuration-supplied keys or in tests.
type Static struct {
	keys []jwk.Key
}

// NewStatic wraps keys as a KeyStore that never changes.
func NewStatic(keys ...jwk.Key) *Static {
	return &Static{keys: keys}
}

func (s *Static) Keys(_ context.Context) ([]jwk.Key, error) {
	return s.keys, nil
}
