package jwt

import (
	"context"
	"time"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwks"
	"github.com/halprotocol/jwtguard/jws"
)

// ValidatorConfig controls a Validator's admission and claim checks.
type ValidatorConfig struct {
	// AllowedAlgorithms is the closed set of algorithms this validator
	// will ever accept. A token whose header names anything else is
	// rejected before key resolution even runs — this is what stops
	// algorithm-confusion attacks (e.g. presenting an RS256 public key
	// as an HS256 HMAC secret).
	AllowedAlgorithms []jws.Algorithm

	// RequiredIssuer, if non-empty, must equal the token's iss claim.
	RequiredIssuer string

	// RequiredAudience, if non-empty, must appear in the token's aud
	// claim.
	RequiredAudience string

	// ClockSkew is the leeway applied on both sides of exp and nbf.
	ClockSkew time.Duration

	// ExpectedType, if non-empty, must equal the header's typ member.
	// A mismatch is a MalformedToken error, not a signature failure.
	ExpectedType string

	// Now returns the current time; defaults to time.Now if nil. Tests
	// override it to pin time deterministically.
	Now func() time.Time
}

func (c ValidatorConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c ValidatorConfig) allows(alg jws.Algorithm) bool {
	for _, a := range c.AllowedAlgorithms {
		if a == alg {
			return true
		}
	}
	return false
}

// Validator decodes and validates compact JWTs whose custom claims are
// typed as A, resolving verification keys from a jwks.KeyStore.
type Validator[A any] struct {
	store KeyStore
	cfg   ValidatorConfig
}

// KeyStore is the subset of jwks.KeyStore a Validator needs; satisfied
// by *jwks.Static, *jwks.Refresher, or any custom implementation.
type KeyStore = jwks.KeyStore

// NewValidator builds a Validator reading keys from store.
func NewValidator[A any](cfg ValidatorConfig, store KeyStore) *Validator[A] {
	return &Validator[A]{store: store, cfg: cfg}
}

// Validate runs the full decode/verify/validate pipeline on compact in
// a fixed order: parse the compact segments and header, admit the
// header's algorithm against the allow-list, resolve a verification
// key, verify the signature, decode the payload into both A and
// RegisteredClaims, check the registered claims, then check typ. Each
// step's error is returned immediately; later steps never run on a
// failure, so the signature is always checked before anything in the
// header or payload is trusted.
func (v *Validator[A]) Validate(ctx context.Context, compact string) (*Jwt[A], error) {
	msg, err := jws.Parse(compact)
	if err != nil {
		return nil, err
	}

	if !v.cfg.allows(msg.Header.Algorithm) {
		return nil, jwtguard.UnsupportedAlgorithm(string(msg.Header.Algorithm))
	}

	key, err := jwks.Resolve(ctx, v.store, string(msg.Header.Algorithm), msg.Header.KeyID)
	if err != nil {
		return nil, err
	}

	verifier, err := jws.NewVerifier(msg.Header.Algorithm, key)
	if err != nil {
		return nil, err
	}
	if err := verifier.Verify(msg.SigningInput, msg.Signature); err != nil {
		return nil, err
	}

	claims, registered, err := decodeClaims[A](msg.Payload)
	if err != nil {
		return nil, err
	}

	if err := v.validateRegisteredClaims(registered); err != nil {
		return nil, err
	}

	if v.cfg.ExpectedType != "" && msg.Header.Type != v.cfg.ExpectedType {
		return nil, jwtguard.MalformedToken(nil, "typ mismatch")
	}

	return &Jwt[A]{
		Header:     msg.Header,
		Claims:     claims,
		Registered: registered,
		Compact:    compact,
	}, nil
}

func (v *Validator[A]) validateRegisteredClaims(c RegisteredClaims) error {
	now := v.cfg.now()

	if c.ExpiresAt != nil {
		if !now.Before(c.ExpiresAt.Time().Add(v.cfg.ClockSkew)) {
			return jwtguard.Expired(int64(*c.ExpiresAt), now.Unix())
		}
	}

	if c.NotBefore != nil {
		if now.Before(c.NotBefore.Time().Add(-v.cfg.ClockSkew)) {
			return jwtguard.NotYetValid(int64(*c.NotBefore), now.Unix())
		}
	}

	if v.cfg.RequiredIssuer != "" && c.Issuer != v.cfg.RequiredIssuer {
		return jwtguard.InvalidIssuer(v.cfg.RequiredIssuer, c.Issuer)
	}

	if v.cfg.RequiredAudience != "" && !c.Audience.Contains(v.cfg.RequiredAudience) {
		return jwtguard.InvalidAudience(v.cfg.RequiredAudience, c.Audience)
	}

	return nil
}
