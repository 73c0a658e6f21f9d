// Package encoding defines function to encode and decode binary data
// in base64url format with no padding as specified in RFC 7515 section 2
// (https://datatracker.ietf.org/doc/html/rfc7515#section-2)
package encoding

import "encoding/base64"

var (
	enc = base64.URLEncoding.WithPadding(base64.NoPadding)
)

// Encode encodes the given data using base64URL encoding with no padding.
func Encode(data []byte) string {
	return enc.EncodeToString(data)
}

// Decode decodes the given base64URL encoded string.
func Decode(data string) ([]byte, error) {
	return enc.DecodeString(data)
}

// ValidSegment reports whether s is non-empty and contains only the
// base64url alphabet (A-Z a-z 0-9 - _). It does not decode s; it is a
// single-pass character scan used to validate compact serialisation
// segments without paying for a full decode just to reject malformed
// input.
func ValidSegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
