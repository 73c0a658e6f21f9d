package jws

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/halprotocol/jwtguard"
)

// rsaSigner implements Signer for RSASSA-PKCS1-v1_5, RFC 7518 section
// 3.3 (RS256/384/512).
type rsaSigner struct {
	alg Algorithm
	key *rsa.PrivateKey
	h   crypto.Hash
	hf  func() hash.Hash
}

func newRSASigner(alg Algorithm, key *rsa.PrivateKey) *rsaSigner {
	spec := algSpecs[alg]
	return &rsaSigner{alg: alg, key: key, h: spec.hash, hf: hashNewFunc(spec.hash)}
}

func (r *rsaSigner) Algorithm() Algorithm { return r.alg }

func (r *rsaSigner) Sign(data []byte) ([]byte, error) {
	h := r.hf()
	h.Write(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, r.key, r.h, h.Sum(nil))
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "RSA signing failed")
	}
	return sig, nil
}

// rsaVerifier implements Verifier for RSASSA-PKCS1-v1_5.
type rsaVerifier struct {
	alg Algorithm
	key *rsa.PublicKey
	h   crypto.Hash
	hf  func() hash.Hash
}

func newRSAVerifier(alg Algorithm, key *rsa.PublicKey) *rsaVerifier {
	spec := algSpecs[alg]
	return &rsaVerifier{alg: alg, key: key, h: spec.hash, hf: hashNewFunc(spec.hash)}
}

func (r *rsaVerifier) Verify(data, signature []byte) error {
	h := r.hf()
	h.Write(data)
	if err := rsa.VerifyPKCS1v15(r.key, r.h, h.Sum(nil), signature); err != nil {
		return jwtguard.InvalidSignature(err)
	}
	return nil
}

func hashNewFunc(h crypto.Hash) func() hash.Hash {
	switch h {
	case crypto.SHA256:
		return sha256.New
	case crypto.SHA384:
		return sha512.New384
	case crypto.SHA512:
		return sha512.New
	default:
		panic("jws: unreachable hash")
	}
}
