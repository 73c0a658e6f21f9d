package jws

import (
	"encoding/json"

	"github.com/halprotocol/jwtguard"
)

// JoseHeader is a JWS protected header, RFC 7515 section 4. Only the
// members this module acts on are modelled; any other member present
// on the wire is silently ignored on decode and never produced on
// encode. "alg" is the only required member, and any value that is
// not one of the twelve algorithms this module implements — including
// "none" — is rejected the moment a header is decoded, never deferred
// to verification or allow-list admission.
type JoseHeader struct {
	Algorithm Algorithm `json:"alg"`
	Type      string    `json:"typ,omitempty"`
	Content   string    `json:"cty,omitempty"`
	KeyID     string    `json:"kid,omitempty"`
}

func (h JoseHeader) encode() (Base64Segment, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return "", jwtguard.MalformedToken(err, "failed to encode header")
	}
	return newBase64Segment(b), nil
}

func decodeHeader(seg string) (JoseHeader, error) {
	raw, err := decodeSegment(seg)
	if err != nil {
		return JoseHeader{}, jwtguard.MalformedToken(err, "invalid header segment")
	}

	var h JoseHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return JoseHeader{}, jwtguard.MalformedToken(err, "invalid header JSON")
	}
	if h.Algorithm == "" {
		return JoseHeader{}, jwtguard.MalformedToken(nil, "header is missing alg")
	}
	if !h.Algorithm.Valid() {
		return JoseHeader{}, jwtguard.MalformedToken(nil, "unsupported alg %q", h.Algorithm)
	}
	return h, nil
}
