package jws

import (
	"math/big"

	"github.com/halprotocol/jwtguard"
)

// encodeRS packs r and s as the fixed-width, big-endian, zero-padded
// concatenation JWS uses for ECDSA signatures (RFC 7518 section 3.4),
// as opposed to the ASN.1 DER SEQUENCE crypto/ecdsa deals in natively.
func encodeRS(r, s *big.Int, coordLen int) []byte {
	out := make([]byte, 2*coordLen)
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	copy(out[coordLen-len(rBytes):coordLen], rBytes)
	copy(out[2*coordLen-len(sBytes):], sBytes)
	return out
}

// decodeRS parses a JWS R||S signature into its two components,
// validating the shape described in RFC 7518 section 3.4 and rejecting
// the degenerate values the CVE-2022-21449 class of bugs stemmed from:
// a signature of the wrong length, or either component zero, negative,
// or not reduced modulo the curve order.
func decodeRS(signature []byte, coordLen int, order *big.Int) (r, s *big.Int, err error) {
	if len(signature) != 2*coordLen {
		return nil, nil, jwtguard.InvalidSignature(nil)
	}

	r = new(big.Int).SetBytes(signature[:coordLen])
	s = new(big.Int).SetBytes(signature[coordLen:])

	if r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, nil, jwtguard.InvalidSignature(nil)
	}
	if r.Cmp(order) >= 0 || s.Cmp(order) >= 0 {
		return nil, nil, jwtguard.InvalidSignature(nil)
	}

	return r, s, nil
}
