package jwk

import (
	"crypto/rsa"
	"encoding/json"
	"math/big"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/internal/bigint"
)

// MinRSAModulusBits is the floor enforced at both encode and decode:
// any RSA key with a smaller modulus is rejected as MalformedToken.
const MinRSAModulusBits = 2048

// RsaPublicKey is a JWK of kty="RSA" carrying only the modulus and
// public exponent.
type RsaPublicKey struct {
	KeyDescription
	N *big.Int
	E int
}

func (k *RsaPublicKey) Type() KeyType   { return KeyTypeRSA }
func (k *RsaPublicKey) IsPrivate() bool { return false }

// ToNative builds an *rsa.PublicKey, enforcing the 2048-bit modulus
// floor.
func (k *RsaPublicKey) ToNative() (*rsa.PublicKey, error) {
	if k.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	return &rsa.PublicKey{N: k.N, E: k.E}, nil
}

// RsaPublicKeyFromNative derives a JWK public key from a native key,
// enforcing the same floor.
func RsaPublicKeyFromNative(pub *rsa.PublicKey, desc KeyDescription) (*RsaPublicKey, error) {
	if pub.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	return &RsaPublicKey{KeyDescription: desc, N: pub.N, E: pub.E}, nil
}

type rsaPublicKeyWire struct {
	KeyDescription
	Type KeyType `json:"kty"`
	N    string  `json:"n"`
	E    string  `json:"e"`
}

func (k *RsaPublicKey) MarshalJSON() ([]byte, error) {
	if k.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	w := rsaPublicKeyWire{
		KeyDescription: k.KeyDescription,
		Type:           KeyTypeRSA,
		N:              bigint.Encode(k.N),
		E:              bigint.Encode(big.NewInt(int64(k.E))),
	}
	return json.Marshal(w)
}

func (k *RsaPublicKey) UnmarshalJSON(data []byte) error {
	var w rsaPublicKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid RSA JWK")
	}
	if w.Type != KeyTypeRSA {
		return jwtguard.MalformedToken(nil, "invalid kty for RSA key: %q", w.Type)
	}
	n, err := bigint.Decode(w.N)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid n value")
	}
	if n.BitLen() < MinRSAModulusBits {
		return jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	eBig, err := bigint.Decode(w.E)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid e value")
	}

	k.KeyDescription = w.KeyDescription
	k.N = n
	k.E = int(eBig.Int64())
	return nil
}

// RsaPrivateKey is a JWK of kty="RSA" carrying the full private key,
// including the CRT parameters (p, q, dp, dq, qi) rather than just d.
type RsaPrivateKey struct {
	KeyDescription
	N, E       *big.Int
	D          *big.Int
	P, Q       *big.Int
	Dp, Dq, Qi *big.Int
}

func (k *RsaPrivateKey) Type() KeyType   { return KeyTypeRSA }
func (k *RsaPrivateKey) IsPrivate() bool { return true }

// ToNative builds an *rsa.PrivateKey, enforcing the modulus floor and
// populating the CRT precomputed values by recomputing them from d, p
// and q. The stored dp, dq and qi are not read.
func (k *RsaPrivateKey) ToNative() (*rsa.PrivateKey, error) {
	if k.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: k.N, E: int(k.E.Int64())},
		D:         k.D,
		Primes:    []*big.Int{k.P, k.Q},
	}
	priv.Precompute()
	return priv, nil
}

// RsaPrivateKeyFromNative derives a JWK private key from a native key,
// reading the CRT parameters out of rsa.PrivateKey.Precomputed (which
// Precompute populates lazily, so it is called here to guarantee they
// are present).
func RsaPrivateKeyFromNative(priv *rsa.PrivateKey, desc KeyDescription) (*RsaPrivateKey, error) {
	if priv.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	if len(priv.Primes) != 2 {
		return nil, jwtguard.MalformedToken(nil, "RSA private key must have exactly two primes")
	}
	priv.Precompute()

	return &RsaPrivateKey{
		KeyDescription: desc,
		N:              priv.N,
		E:              big.NewInt(int64(priv.E)),
		D:              priv.D,
		P:              priv.Primes[0],
		Q:              priv.Primes[1],
		Dp:             priv.Precomputed.Dp,
		Dq:             priv.Precomputed.Dq,
		Qi:             priv.Precomputed.Qinv,
	}, nil
}

type rsaPrivateKeyWire struct {
	KeyDescription
	Type KeyType `json:"kty"`
	N    string  `json:"n"`
	E    string  `json:"e"`
	D    string  `json:"d"`
	P    string  `json:"p"`
	Q    string  `json:"q"`
	Dp   string  `json:"dp"`
	Dq   string  `json:"dq"`
	Qi   string  `json:"qi"`
}

func (k *RsaPrivateKey) MarshalJSON() ([]byte, error) {
	if k.N.BitLen() < MinRSAModulusBits {
		return nil, jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}
	w := rsaPrivateKeyWire{
		KeyDescription: k.KeyDescription,
		Type:           KeyTypeRSA,
		N:              bigint.Encode(k.N),
		E:              bigint.Encode(k.E),
		D:              bigint.Encode(k.D),
		P:              bigint.Encode(k.P),
		Q:              bigint.Encode(k.Q),
		Dp:             bigint.Encode(k.Dp),
		Dq:             bigint.Encode(k.Dq),
		Qi:             bigint.Encode(k.Qi),
	}
	return json.Marshal(w)
}

func (k *RsaPrivateKey) UnmarshalJSON(data []byte) error {
	var w rsaPrivateKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid RSA JWK")
	}
	if w.Type != KeyTypeRSA {
		return jwtguard.MalformedToken(nil, "invalid kty for RSA key: %q", w.Type)
	}

	fields := map[string]string{"n": w.N, "e": w.E, "d": w.D, "p": w.P, "q": w.Q, "dp": w.Dp, "dq": w.Dq, "qi": w.Qi}
	decoded := make(map[string]*big.Int, len(fields))
	for name, v := range fields {
		n, err := bigint.Decode(v)
		if err != nil {
			return jwtguard.MalformedToken(err, "invalid %s value", name)
		}
		decoded[name] = n
	}
	if decoded["n"].BitLen() < MinRSAModulusBits {
		return jwtguard.MalformedToken(nil, "RSA key must be at least %d bits", MinRSAModulusBits)
	}

	k.KeyDescription = w.KeyDescription
	k.N = decoded["n"]
	k.E = decoded["e"]
	k.D = decoded["d"]
	k.P = decoded["p"]
	k.Q = decoded["q"]
	k.Dp = decoded["dp"]
	k.Dq = decoded["dq"]
	k.Qi = decoded["qi"]
	return nil
}
