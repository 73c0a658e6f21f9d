package jws

import (
	"crypto/ecdsa"
	"crypto/rsa"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
)

// Signer produces a signature over a signing input using a single
// algorithm and key.
type Signer interface {
	// Algorithm returns the alg this Signer writes into the header.
	Algorithm() Algorithm
	// Sign returns the raw signature bytes for data.
	Sign(data []byte) ([]byte, error)
}

// Verifier checks a signature over a signing input.
type Verifier interface {
	// Verify returns a KindInvalidSignature *jwtguard.Error if
	// signature does not verify against data, nil otherwise.
	Verify(data, signature []byte) error
}

// NewSigner builds a Signer for alg using key's native key material.
// key must be suitable for signing with alg (see jwk.SuitableForSigning).
func NewSigner(alg Algorithm, key jwk.Key) (Signer, error) {
	spec, err := alg.spec()
	if err != nil {
		return nil, err
	}

	switch spec.family {
	case FamilyHMAC:
		secret, err := octSecret(key)
		if err != nil {
			return nil, err
		}
		return newHMACSigner(alg, secret), nil

	case FamilyRSAPKCS1v15, FamilyRSAPSS:
		priv, ok := key.(*jwk.RsaPrivateKey)
		if !ok {
			return nil, jwtguard.MalformedToken(nil, "algorithm %s requires an RSA private key", alg)
		}
		native, err := priv.ToNative()
		if err != nil {
			return nil, err
		}
		if spec.family == FamilyRSAPSS {
			return newPSSSigner(alg, native), nil
		}
		return newRSASigner(alg, native), nil

	case FamilyECDSA:
		priv, ok := key.(*jwk.EcPrivateKey)
		if !ok {
			return nil, jwtguard.MalformedToken(nil, "algorithm %s requires an EC private key", alg)
		}
		native, err := priv.ToNative()
		if err != nil {
			return nil, err
		}
		return newECDSASigner(alg, native, priv.Curve.CoordinateLength())

	default:
		return nil, jwtguard.UnsupportedAlgorithm(string(alg))
	}
}

// NewVerifier builds a Verifier for alg using key's native key
// material. key must be suitable for verification with alg (see
// jwk.SuitableForVerification).
func NewVerifier(alg Algorithm, key jwk.Key) (Verifier, error) {
	spec, err := alg.spec()
	if err != nil {
		return nil, err
	}

	switch spec.family {
	case FamilyHMAC:
		secret, err := octSecret(key)
		if err != nil {
			return nil, err
		}
		return newHMACSigner(alg, secret), nil

	case FamilyRSAPKCS1v15, FamilyRSAPSS:
		pub, err := rsaPublicFromKey(key)
		if err != nil {
			return nil, err
		}
		if spec.family == FamilyRSAPSS {
			return newPSSVerifier(alg, pub), nil
		}
		return newRSAVerifier(alg, pub), nil

	case FamilyECDSA:
		pub, curve, err := ecdsaPublicFromKey(key)
		if err != nil {
			return nil, err
		}
		return newECDSAVerifier(alg, pub, curve.CoordinateLength())

	default:
		return nil, jwtguard.UnsupportedAlgorithm(string(alg))
	}
}

func octSecret(key jwk.Key) ([]byte, error) {
	sym, ok := key.(*jwk.SymmetricKey)
	if !ok {
		return nil, jwtguard.MalformedToken(nil, "HMAC algorithm requires an oct key")
	}
	return sym.Bytes, nil
}

func rsaPublicFromKey(key jwk.Key) (*rsa.PublicKey, error) {
	switch k := key.(type) {
	case *jwk.RsaPublicKey:
		return k.ToNative()
	case *jwk.RsaPrivateKey:
		native, err := k.ToNative()
		if err != nil {
			return nil, err
		}
		return &native.PublicKey, nil
	default:
		return nil, jwtguard.MalformedToken(nil, "RSA algorithm requires an RSA key")
	}
}

func ecdsaPublicFromKey(key jwk.Key) (*ecdsa.PublicKey, jwk.EcCurve, error) {
	switch k := key.(type) {
	case *jwk.EcPublicKey:
		native, err := k.ToNative()
		return native, k.Curve, err
	case *jwk.EcPrivateKey:
		native, err := k.ToNative()
		if err != nil {
			return nil, jwk.EcCurve{}, err
		}
		return &native.PublicKey, k.Curve, nil
	default:
		return nil, jwk.EcCurve{}, jwtguard.MalformedToken(nil, "EC algorithm requires an EC key")
	}
}
