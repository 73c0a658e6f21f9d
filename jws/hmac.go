package jws

import (
	"crypto/hmac"
	"hash"

	"github.com/halprotocol/jwtguard"
)

// hmacSigner implements both Signer and Verifier for the HS256/384/512
// family, RFC 7518 section 3.2. Verification recomputes the MAC and
// compares it to the supplied signature in constant time rather than
// decrypting or otherwise inverting anything.
type hmacSigner struct {
	alg    Algorithm
	secret []byte
	hf     func() hash.Hash
}

func newHMACSigner(alg Algorithm, secret []byte) *hmacSigner {
	return &hmacSigner{alg: alg, secret: secret, hf: algSpecs[alg].hash.New}
}

func (h *hmacSigner) Algorithm() Algorithm { return h.alg }

func (h *hmacSigner) Sign(data []byte) ([]byte, error) {
	mac := hmac.New(h.hf, h.secret)
	mac.Write(data)
	return mac.Sum(nil), nil
}

func (h *hmacSigner) Verify(data, signature []byte) error {
	expected, err := h.Sign(data)
	if err != nil {
		return jwtguard.InvalidSignature(err)
	}
	if !constantTimeEqual(expected, signature) {
		return jwtguard.InvalidSignature(nil)
	}
	return nil
}

// constantTimeEqual reports whether a and b are equal, taking time
// independent of where they first differ. Unlike hmac.Equal (which
// already does this), it also treats a length mismatch without a
// length-dependent early return: the full comparison loop always runs
// over the longer of the two slices.
func constantTimeEqual(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var diff byte
	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		diff |= x ^ y
	}
	return diff == 0 && len(a) == len(b)
}
