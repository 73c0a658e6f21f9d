package jws

import (
	"crypto/ecdsa"
	"crypto/rand"
	"hash"

	"github.com/halprotocol/jwtguard"
)

// ecdsaSigner implements Signer for ES256/384/512, RFC 7518 section
// 3.4. The key's curve must be the algorithm's declared curve
// (newECDSASigner rejects any other), and the emitted R||S signature
// uses the coordinate length passed in from that key's curve.
type ecdsaSigner struct {
	alg      Algorithm
	key      *ecdsa.PrivateKey
	hf       func() hash.Hash
	coordLen int
}

func newECDSASigner(alg Algorithm, key *ecdsa.PrivateKey, coordLen int) (*ecdsaSigner, error) {
	spec := algSpecs[alg]
	if key.Curve.Params().BitSize != curveBitSize(spec.curve) {
		return nil, jwtguard.MalformedToken(nil, "key curve does not match algorithm %s", alg)
	}
	return &ecdsaSigner{alg: alg, key: key, hf: hashNewFunc(spec.hash), coordLen: coordLen}, nil
}

func (e *ecdsaSigner) Algorithm() Algorithm { return e.alg }

func (e *ecdsaSigner) Sign(data []byte) ([]byte, error) {
	h := e.hf()
	h.Write(data)
	r, s, err := ecdsa.Sign(rand.Reader, e.key, h.Sum(nil))
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "ECDSA signing failed")
	}
	return encodeRS(r, s, e.coordLen), nil
}

// ecdsaVerifier implements Verifier for ES256/384/512. Verify performs
// the R||S shape and range sanity check from ecdsa_transcode.go before
// ever calling ecdsa.Verify, so a malformed or degenerate signature is
// always a KindInvalidSignature, never a panic inside crypto/ecdsa.
type ecdsaVerifier struct {
	alg      Algorithm
	key      *ecdsa.PublicKey
	hf       func() hash.Hash
	coordLen int
}

func newECDSAVerifier(alg Algorithm, key *ecdsa.PublicKey, coordLen int) (*ecdsaVerifier, error) {
	spec := algSpecs[alg]
	if key.Curve.Params().BitSize != curveBitSize(spec.curve) {
		return nil, jwtguard.MalformedToken(nil, "key curve does not match algorithm %s", alg)
	}
	return &ecdsaVerifier{alg: alg, key: key, hf: hashNewFunc(spec.hash), coordLen: coordLen}, nil
}

func (e *ecdsaVerifier) Verify(data, signature []byte) error {
	r, s, err := decodeRS(signature, e.coordLen, e.key.Curve.Params().N)
	if err != nil {
		return err
	}

	h := e.hf()
	h.Write(data)
	if !ecdsa.Verify(e.key, h.Sum(nil), r, s) {
		return jwtguard.InvalidSignature(nil)
	}
	return nil
}

func curveBitSize(name string) int {
	switch name {
	case "P-256":
		return 256
	case "P-384":
		return 384
	case "P-521":
		return 521
	default:
		return 0
	}
}
