// Package jwt implements JSON Web Tokens as defined in RFC 7519
// (https://datatracker.ietf.org/doc/html/rfc7519): building tokens
// from arbitrary claim types and validating them against a key store.
package jwt

import (
	"encoding/json"
	"time"

	"github.com/halprotocol/jwtguard"
)

// NumericDate is a JWT NumericDate (RFC 7519 section 2): seconds since
// the Unix epoch, encoded on the wire as a plain JSON number. Claim
// fields that use it hold *NumericDate rather than NumericDate, since
// epoch second 0 is a valid, meaningful instant (1970-01-01T00:00:00Z)
// that must stay distinguishable from "this claim was never set" — a
// nil pointer is absence, a non-nil pointer to 0 is the claim "exp": 0.
type NumericDate int64

// NewNumericDate truncates t to whole seconds since the epoch.
func NewNumericDate(t time.Time) *NumericDate {
	n := NumericDate(t.Unix())
	return &n
}

// Time returns the NumericDate as a time.Time.
func (n NumericDate) Time() time.Time {
	return time.Unix(int64(n), 0)
}

// Audience is the "aud" claim (RFC 7519 section 4.1.3): on the wire it
// is a single string when there is exactly one audience value, or a
// JSON array otherwise. Decoding accepts either shape.
type Audience []string

func (a Audience) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

func (a *Audience) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Audience{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return jwtguard.MalformedToken(err, "invalid aud claim")
	}
	*a = Audience(many)
	return nil
}

// Contains reports whether v is one of a's values.
func (a Audience) Contains(v string) bool {
	for _, c := range a {
		if c == v {
			return true
		}
	}
	return false
}

// RegisteredClaims holds the seven claims RFC 7519 section 4.1
// reserves a name for. A token's custom claim type is decoded and
// validated alongside this struct rather than embedding it, so a
// caller's claim type is free to be any JSON object shape.
type RegisteredClaims struct {
	Issuer    string       `json:"iss,omitempty"`
	Subject   string       `json:"sub,omitempty"`
	Audience  Audience     `json:"aud,omitempty"`
	ExpiresAt *NumericDate `json:"exp,omitempty"`
	NotBefore *NumericDate `json:"nbf,omitempty"`
	IssuedAt  *NumericDate `json:"iat,omitempty"`
	ID        string       `json:"jti,omitempty"`
}
