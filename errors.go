// Package jwtguard provides the error taxonomy shared by the jwk, jws,
// jwt and jwks packages, plus the small set of primitive types that
// don't belong to any single one of them.
package jwtguard

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a validation or issuance failure.
// Programmatic callers branch on Kind; HTTP middleware maps every Kind
// to 401 Unauthorized without distinguishing between them.
type Kind int

const (
	// KindExpired is returned when a token's exp claim, plus clock skew,
	// is at or before the current time.
	KindExpired Kind = iota + 1

	// KindNotYetValid is returned when a token's nbf claim, minus clock
	// skew, is after the current time.
	KindNotYetValid

	// KindInvalidAudience is returned when a configured required
	// audience is absent from the token's aud claim.
	KindInvalidAudience

	// KindInvalidIssuer is returned when a configured required issuer
	// does not match the token's iss claim.
	KindInvalidIssuer

	// KindInvalidSignature is returned for any signature-shape or
	// cryptographic verification failure.
	KindInvalidSignature

	// KindMalformedToken is returned for structural parse errors, codec
	// errors, EC points off the curve, unsupported key types, RSA
	// key-size floor violations, and typ mismatches.
	KindMalformedToken

	// KindUnsupportedAlgorithm is returned when a token's alg is not in
	// the validator's configured allow-list.
	KindUnsupportedAlgorithm

	// KindKeyNotFound is returned when key resolution matches zero or
	// more than one candidate key.
	KindKeyNotFound
)

func (k Kind) String() string {
	switch k {
	case KindExpired:
		return "expired"
	case KindNotYetValid:
		return "not_yet_valid"
	case KindInvalidAudience:
		return "invalid_audience"
	case KindInvalidIssuer:
		return "invalid_issuer"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindMalformedToken:
		return "malformed_token"
	case KindUnsupportedAlgorithm:
		return "unsupported_algorithm"
	case KindKeyNotFound:
		return "key_not_found"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this module's validation,
// issuance, key-conversion, signature and JWKS-fetch operations. It
// carries a Kind for programmatic matching, a human-readable message,
// and an optional wrapped cause. Context cancellation (NewRefresher,
// Refresher.Run) is returned as the context's own error, and errors
// from a caller-supplied Fetcher or KeyStore are passed through as is.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can do errors.Is(err, jwtguard.Expired(0, 0)) or, more idiomatically,
// check err.(*jwtguard.Error).Kind == jwtguard.KindExpired directly.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return te.Kind == e.Kind
	}
	return false
}

// newErr builds an *Error with the given kind and formatted message.
func newErr(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Expired builds a KindExpired error reporting the claim and observed
// time that triggered the rejection, both as epoch seconds.
func Expired(exp, now int64) *Error {
	return newErr(KindExpired, nil, "token expired at %d, now %d", exp, now)
}

// NotYetValid builds a KindNotYetValid error.
func NotYetValid(nbf, now int64) *Error {
	return newErr(KindNotYetValid, nil, "token not valid until %d, now %d", nbf, now)
}

// InvalidAudience builds a KindInvalidAudience error.
func InvalidAudience(expected string, actual any) *Error {
	return newErr(KindInvalidAudience, nil, "audience %q not found in %v", expected, actual)
}

// InvalidIssuer builds a KindInvalidIssuer error.
func InvalidIssuer(expected, actual string) *Error {
	return newErr(KindInvalidIssuer, nil, "issuer %q does not match %q", expected, actual)
}

// InvalidSignature builds a KindInvalidSignature error, optionally
// wrapping a lower-level cause.
func InvalidSignature(cause error) *Error {
	return newErr(KindInvalidSignature, cause, "signature verification failed")
}

// MalformedToken builds a KindMalformedToken error wrapping cause, which
// may be nil.
func MalformedToken(cause error, format string, args ...any) *Error {
	return newErr(KindMalformedToken, cause, format, args...)
}

// UnsupportedAlgorithm builds a KindUnsupportedAlgorithm error.
func UnsupportedAlgorithm(name string) *Error {
	return newErr(KindUnsupportedAlgorithm, nil, "algorithm %q is not allowed", name)
}

// KeyNotFound builds a KindKeyNotFound error. kid is empty when the
// header carried no kid.
func KeyNotFound(kid string) *Error {
	if kid == "" {
		return newErr(KindKeyNotFound, nil, "no unambiguous key found (no kid in header)")
	}
	return newErr(KindKeyNotFound, nil, "no key found for kid %q", kid)
}
