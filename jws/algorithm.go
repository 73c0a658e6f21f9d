// Package jws implements JSON Web Signatures as defined in RFC 7515
// (https://datatracker.ietf.org/doc/html/rfc7515), together with the
// signing algorithms from RFC 7518 section 3
// (https://www.rfc-editor.org/rfc/rfc7518.html#section-3).
package jws

import (
	"crypto"

	"github.com/halprotocol/jwtguard"
)

// Algorithm names a signing algorithm as carried in a JOSE header's
// "alg" member. The set is closed: this module supports exactly the
// twelve algorithms below and never "none" (RFC 7519 section 6
// describes "none" as a distinct, deliberately unsecured mechanism
// this module does not implement).
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"

	RS256 Algorithm = "RS256"
	RS384 Algorithm = "RS384"
	RS512 Algorithm = "RS512"

	PS256 Algorithm = "PS256"
	PS384 Algorithm = "PS384"
	PS512 Algorithm = "PS512"

	ES256 Algorithm = "ES256"
	ES384 Algorithm = "ES384"
	ES512 Algorithm = "ES512"
)

// Family identifies the cryptographic primitive family of an
// Algorithm: HMAC, RSASSA-PKCS1-v1_5, RSASSA-PSS or ECDSA.
type Family int

const (
	FamilyHMAC Family = iota + 1
	FamilyRSAPKCS1v15
	FamilyRSAPSS
	FamilyECDSA
)

type algSpec struct {
	family  Family
	hash    crypto.Hash
	curve   string // only set for FamilyECDSA; matches jwk.EcCurve.Name()
	coordSz int    // only set for FamilyECDSA
}

var algSpecs = map[Algorithm]algSpec{
	HS256: {family: FamilyHMAC, hash: crypto.SHA256},
	HS384: {family: FamilyHMAC, hash: crypto.SHA384},
	HS512: {family: FamilyHMAC, hash: crypto.SHA512},

	RS256: {family: FamilyRSAPKCS1v15, hash: crypto.SHA256},
	RS384: {family: FamilyRSAPKCS1v15, hash: crypto.SHA384},
	RS512: {family: FamilyRSAPKCS1v15, hash: crypto.SHA512},

	PS256: {family: FamilyRSAPSS, hash: crypto.SHA256},
	PS384: {family: FamilyRSAPSS, hash: crypto.SHA384},
	PS512: {family: FamilyRSAPSS, hash: crypto.SHA512},

	ES256: {family: FamilyECDSA, hash: crypto.SHA256, curve: "P-256", coordSz: 32},
	ES384: {family: FamilyECDSA, hash: crypto.SHA384, curve: "P-384", coordSz: 48},
	ES512: {family: FamilyECDSA, hash: crypto.SHA512, curve: "P-521", coordSz: 66},
}

// Valid reports whether alg is one of the twelve supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algSpecs[a]
	return ok
}

// Family returns a's primitive family, or 0 if a is not supported.
func (a Algorithm) Family() Family {
	return algSpecs[a].family
}

func (a Algorithm) spec() (algSpec, error) {
	s, ok := algSpecs[a]
	if !ok {
		return algSpec{}, jwtguard.UnsupportedAlgorithm(string(a))
	}
	return s, nil
}
