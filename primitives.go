package jwtguard

import (
	"github.com/halprotocol/jwtguard/internal/encoding"
)

// Kid is a non-empty key identifier. The empty string is never a valid
// Kid; use the zero value of *Kid (nil) or a bool to represent "no kid"
// at call sites instead of constructing an empty one.
type Kid struct {
	value string
}

// NewKid validates s and returns a Kid wrapping it. It is the single
// entry point for constructing a Kid; there is no other way to obtain
// one with a non-empty value.
func NewKid(s string) (Kid, error) {
	if s == "" {
		return Kid{}, MalformedToken(nil, "kid must not be empty")
	}
	return Kid{value: s}, nil
}

// String returns the kid's underlying value.
func (k Kid) String() string {
	return k.value
}

// IsZero reports whether k was never constructed through NewKid.
func (k Kid) IsZero() bool {
	return k.value == ""
}

// Base64UrlString is a non-empty string validated to contain only the
// base64url alphabet (RFC 4648 section 5), used for every key-material
// field of a JWK. It does not itself carry padding; none is ever
// produced by this module's encoders and none is accepted by its
// decoders.
type Base64UrlString struct {
	value string
}

// NewBase64UrlString validates s and wraps it. Decoding is *not*
// performed here — callers that need the raw bytes call Decode.
func NewBase64UrlString(s string) (Base64UrlString, error) {
	if !encoding.ValidSegment(s) {
		return Base64UrlString{}, MalformedToken(nil, "invalid base64url string: %q", s)
	}
	return Base64UrlString{value: s}, nil
}

// String returns the encoded form.
func (b Base64UrlString) String() string {
	return b.value
}

// Decode returns the decoded bytes.
func (b Base64UrlString) Decode() ([]byte, error) {
	raw, err := encoding.Decode(b.value)
	if err != nil {
		return nil, MalformedToken(err, "invalid base64url content")
	}
	return raw, nil
}

// FromBytes encodes data as a Base64UrlString.
func FromBytes(data []byte) Base64UrlString {
	return Base64UrlString{value: encoding.Encode(data)}
}
