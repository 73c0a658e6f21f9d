// Package bigint converts between the base64url-encoded big-endian
// integers used by JWK key material (RFC 7518 section 2) and
// math/big.Int, including the fixed-width padding EC coordinates
// require.
package bigint

import (
	"math/big"

	"github.com/halprotocol/jwtguard/internal/encoding"
)

// Decode decodes a base64url string as an unsigned big-endian integer.
func Decode(s string) (*big.Int, error) {
	b, err := encoding.Decode(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Encode encodes n as base64url without a sign byte and without padding
// to any fixed width. Used for RSA n and e, which are not fixed-length.
func Encode(n *big.Int) string {
	return encoding.Encode(n.Bytes())
}

// EncodePadded encodes n left-padded with zero bytes to exactly size
// bytes. Used for EC coordinates and private scalars, which must always
// occupy the curve's fixed coordinate length (RFC 7518 section 6.2.1.2).
// n is never truncated: a value that does not fit in size bytes is an
// invariant violation by the caller, not something this function hides.
func EncodePadded(n *big.Int, size int) string {
	raw := n.Bytes()
	if len(raw) >= size {
		return encoding.Encode(raw)
	}
	buf := make([]byte, size)
	copy(buf[size-len(raw):], raw)
	return encoding.Encode(buf)
}
