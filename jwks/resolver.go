package jwks

import (
	"context"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
)

// Resolve picks the single key from store suitable for verifying alg,
// optionally narrowed by kid. A kid present in the header must match
// exactly one suitable key; a header without a kid resolves only if
// exactly one suitable key remains after filtering by algorithm —
// anything else (zero matches, or more than one with no kid to
// disambiguate) is a KeyNotFound error, never a guess.
func Resolve(ctx context.Context, store KeyStore, alg string, kid string) (jwk.Key, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var suitable []jwk.Key
	for _, k := range keys {
		if jwk.SuitableForVerification(k, alg) {
			suitable = append(suitable, k)
		}
	}

	if kid != "" {
		var match jwk.Key
		count := 0
		for _, k := range suitable {
			if k.ID() == kid {
				match = k
				count++
			}
		}
		if count != 1 {
			return nil, jwtguard.KeyNotFound(kid)
		}
		return match, nil
	}

	if len(suitable) != 1 {
		return nil, jwtguard.KeyNotFound("")
	}
	return suitable[0], nil
}
