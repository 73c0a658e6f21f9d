package jws

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"hash"

	"github.com/halprotocol/jwtguard"
)

// pssSigner implements Signer for RSASSA-PSS, RFC 7518 section 3.5
// (PS256/384/512). The salt length is the digest length, matching the
// MGF1 parameterisation every other JOSE implementation uses.
type pssSigner struct {
	alg Algorithm
	key *rsa.PrivateKey
	h   crypto.Hash
	hf  func() hash.Hash
}

func newPSSSigner(alg Algorithm, key *rsa.PrivateKey) *pssSigner {
	spec := algSpecs[alg]
	return &pssSigner{alg: alg, key: key, h: spec.hash, hf: hashNewFunc(spec.hash)}
}

func (p *pssSigner) Algorithm() Algorithm { return p.alg }

func (p *pssSigner) Sign(data []byte) ([]byte, error) {
	h := p.hf()
	h.Write(data)
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: p.h}
	sig, err := rsa.SignPSS(rand.Reader, p.key, p.h, h.Sum(nil), opts)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "RSA-PSS signing failed")
	}
	return sig, nil
}

// pssVerifier implements Verifier for RSASSA-PSS.
type pssVerifier struct {
	alg Algorithm
	key *rsa.PublicKey
	h   crypto.Hash
	hf  func() hash.Hash
}

func newPSSVerifier(alg Algorithm, key *rsa.PublicKey) *pssVerifier {
	spec := algSpecs[alg]
	return &pssVerifier{alg: alg, key: key, h: spec.hash, hf: hashNewFunc(spec.hash)}
}

func (p *pssVerifier) Verify(data, signature []byte) error {
	h := p.hf()
	h.Write(data)
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: p.h}
	if err := rsa.VerifyPSS(p.key, p.h, h.Sum(nil), signature, opts); err != nil {
		return jwtguard.InvalidSignature(err)
	}
	return nil
}
