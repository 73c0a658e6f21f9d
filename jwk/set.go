package jwk

import (
	"encoding/json"

	"github.com/halprotocol/jwtguard"
)

const ParamKeys = "keys"

// KeyFilter selects a subset of a Set.
type KeyFilter func(k Key) bool

// WithID filters by exact kid match.
func WithID(kid string) KeyFilter {
	return func(k Key) bool { return k.ID() == kid }
}

// WithAlgorithm filters by exact alg match.
func WithAlgorithm(alg string) KeyFilter {
	return func(k Key) bool { return k.Algorithm() == alg }
}

// Set is an ordered sequence of keys, marshalled as {"keys": [...]},
// the wire format of a JWK Set (RFC 7517 section 5).
type Set []Key

// Has reports whether any key in s matches f.
func (s Set) Has(f KeyFilter) bool {
	return s.First(f) != nil
}

// First returns the first key matching f, or nil.
func (s Set) First(f KeyFilter) Key {
	for _, k := range s {
		if f(k) {
			return k
		}
	}
	return nil
}

// Filter returns every key in s matching f, preserving order.
func (s Set) Filter(f KeyFilter) Set {
	var out Set
	for _, k := range s {
		if f(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	type wrapper struct {
		Keys []Key `json:"keys"`
	}
	keys := s
	if keys == nil {
		keys = Set{}
	}
	return json.Marshal(wrapper{Keys: keys})
}

// UnmarshalJSON decodes a JWK Set. A missing "keys" member decodes to
// an empty Set rather than an error.
func (s *Set) UnmarshalJSON(data []byte) error {
	var w struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid JWK set")
	}

	out := make(Set, 0, len(w.Keys))
	for _, rm := range w.Keys {
		k, err := UnmarshalKey(rm)
		if err != nil {
			return err
		}
		out = append(out, k)
	}
	*s = out
	return nil
}
