package jws

import (
	"strings"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/internal/encoding"
)

// Base64Segment is one dot-separated, unpadded base64url segment of a
// compact JWS. It is a plain string alias rather than an opaque type:
// segments never leave this package unvalidated, so the extra
// indirection a wrapper type would add has no call site that needs it.
type Base64Segment = string

func newBase64Segment(data []byte) Base64Segment {
	return encoding.Encode(data)
}

func decodeSegment(seg Base64Segment) ([]byte, error) {
	if !encoding.ValidSegment(seg) {
		return nil, jwtguard.MalformedToken(nil, "invalid base64url segment")
	}
	return encoding.Decode(seg)
}

// TokenString is a JWS in compact serialisation, RFC 7515 section 7.1:
// three base64url segments (header, payload, signature) joined by ".".
// Constructing one only validates the segment count and alphabet, not
// the JSON or the signature itself.
type TokenString struct {
	value string
}

// NewTokenString validates s has the compact JWS shape and wraps it.
func NewTokenString(s string) (TokenString, error) {
	if _, _, _, err := splitCompact(s); err != nil {
		return TokenString{}, err
	}
	return TokenString{value: s}, nil
}

func (t TokenString) String() string { return t.value }

func splitCompact(s string) (header, payload, signature Base64Segment, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return "", "", "", jwtguard.MalformedToken(nil, "compact JWS must have exactly three segments, got %d", len(parts))
	}
	for _, p := range parts {
		if !encoding.ValidSegment(p) {
			return "", "", "", jwtguard.MalformedToken(nil, "invalid base64url segment")
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// Message is a parsed, not-yet-verified JWS: the decoded header and
// payload, plus the raw signing input and signature bytes needed to
// verify it against a key.
type Message struct {
	Header         JoseHeader
	Payload        []byte
	SigningInput   []byte
	Signature      []byte
	HeaderSegment  Base64Segment
	PayloadSegment Base64Segment
}

// Parse decodes a compact-serialised JWS without verifying its
// signature. Callers must call a Verifier against the result before
// trusting Payload.
func Parse(compact string) (*Message, error) {
	headerSeg, payloadSeg, sigSeg, err := splitCompact(compact)
	if err != nil {
		return nil, err
	}

	header, err := decodeHeader(headerSeg)
	if err != nil {
		return nil, err
	}

	payload, err := decodeSegment(payloadSeg)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "invalid payload segment")
	}

	signature, err := decodeSegment(sigSeg)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "invalid signature segment")
	}

	return &Message{
		Header:         header,
		Payload:        payload,
		SigningInput:   []byte(headerSeg + "." + payloadSeg),
		Signature:      signature,
		HeaderSegment:  headerSeg,
		PayloadSegment: payloadSeg,
	}, nil
}

// Sign builds a compact-serialised JWS by signing payload under
// header with signer, which determines header.Algorithm.
func Sign(signer Signer, header JoseHeader, payload []byte) (string, error) {
	header.Algorithm = signer.Algorithm()

	headerSeg, err := header.encode()
	if err != nil {
		return "", err
	}
	payloadSeg := newBase64Segment(payload)

	signature, err := signer.Sign([]byte(headerSeg + "." + payloadSeg))
	if err != nil {
		return "", err
	}

	return headerSeg + "." + payloadSeg + "." + newBase64Segment(signature), nil
}
