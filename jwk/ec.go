package jwk

import (
	"crypto/ecdsa"
	"encoding/json"
	"math/big"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/internal/bigint"
)

// EcPublicKey is a JWK of kty="EC" carrying only the public point.
type EcPublicKey struct {
	KeyDescription
	Curve EcCurve
	X, Y  *big.Int
}

func (e *EcPublicKey) Type() KeyType   { return KeyTypeEC }
func (e *EcPublicKey) IsPrivate() bool { return false }

// ToNative builds an *ecdsa.PublicKey, validating that (X, Y) lies on
// the curve independently of whatever crypto/ecdsa itself would check.
// An off-curve point is a MalformedToken error, never a panic, and
// never reaches a signature verification call.
func (e *EcPublicKey) ToNative() (*ecdsa.PublicKey, error) {
	if !e.Curve.IsOnCurve(e.X, e.Y) {
		return nil, jwtguard.MalformedToken(nil, "EC point is not on the curve")
	}
	return &ecdsa.PublicKey{Curve: e.Curve.Curve(), X: e.X, Y: e.Y}, nil
}

// EcPublicKeyFromNative derives a JWK public key from a native key,
// choosing the curve from the key's field bit size.
func EcPublicKeyFromNative(pub *ecdsa.PublicKey, desc KeyDescription) (*EcPublicKey, error) {
	crv, ok := CurveByBitSize(pub.Curve.Params().BitSize)
	if !ok {
		return nil, jwtguard.MalformedToken(nil, "unsupported EC curve bit size: %d", pub.Curve.Params().BitSize)
	}
	return &EcPublicKey{KeyDescription: desc, Curve: crv, X: pub.X, Y: pub.Y}, nil
}

type ecPublicKeyWire struct {
	KeyDescription
	Type  KeyType `json:"kty"`
	Curve string  `json:"crv"`
	X     string  `json:"x"`
	Y     string  `json:"y"`
}

func (e *EcPublicKey) MarshalJSON() ([]byte, error) {
	n := e.Curve.CoordinateLength()
	w := ecPublicKeyWire{
		KeyDescription: e.KeyDescription,
		Type:           KeyTypeEC,
		Curve:          e.Curve.Name(),
		X:              bigint.EncodePadded(e.X, n),
		Y:              bigint.EncodePadded(e.Y, n),
	}
	return json.Marshal(w)
}

func (e *EcPublicKey) UnmarshalJSON(data []byte) error {
	var w ecPublicKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid EC JWK")
	}
	if w.Type != KeyTypeEC {
		return jwtguard.MalformedToken(nil, "invalid kty for EC key: %q", w.Type)
	}
	crv, ok := CurveByName(w.Curve)
	if !ok {
		return jwtguard.MalformedToken(nil, "unsupported EC curve: %q", w.Curve)
	}
	x, err := bigint.Decode(w.X)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid x value")
	}
	y, err := bigint.Decode(w.Y)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid y value")
	}

	e.KeyDescription = w.KeyDescription
	e.Curve = crv
	e.X = x
	e.Y = y
	return nil
}

// EcPrivateKey is a JWK of kty="EC" carrying the private scalar d, plus
// the public coordinates since it is produced from a full key pair.
type EcPrivateKey struct {
	KeyDescription
	Curve EcCurve
	X, Y  *big.Int
	D     *big.Int
}

func (e *EcPrivateKey) Type() KeyType   { return KeyTypeEC }
func (e *EcPrivateKey) IsPrivate() bool { return true }

// ToNative builds an *ecdsa.PrivateKey, validating the public point the
// same way EcPublicKey.ToNative does.
func (e *EcPrivateKey) ToNative() (*ecdsa.PrivateKey, error) {
	if !e.Curve.IsOnCurve(e.X, e.Y) {
		return nil, jwtguard.MalformedToken(nil, "EC point is not on the curve")
	}
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: e.Curve.Curve(), X: e.X, Y: e.Y},
		D:         e.D,
	}, nil
}

// EcPrivateKeyFromNative derives a JWK private key from a native key
// pair.
func EcPrivateKeyFromNative(priv *ecdsa.PrivateKey, desc KeyDescription) (*EcPrivateKey, error) {
	crv, ok := CurveByBitSize(priv.Curve.Params().BitSize)
	if !ok {
		return nil, jwtguard.MalformedToken(nil, "unsupported EC curve bit size: %d", priv.Curve.Params().BitSize)
	}
	return &EcPrivateKey{
		KeyDescription: desc,
		Curve:          crv,
		X:              priv.X,
		Y:              priv.Y,
		D:              priv.D,
	}, nil
}

type ecPrivateKeyWire struct {
	KeyDescription
	Type  KeyType `json:"kty"`
	Curve string  `json:"crv"`
	X     string  `json:"x"`
	Y     string  `json:"y"`
	D     string  `json:"d"`
}

func (e *EcPrivateKey) MarshalJSON() ([]byte, error) {
	n := e.Curve.CoordinateLength()
	w := ecPrivateKeyWire{
		KeyDescription: e.KeyDescription,
		Type:           KeyTypeEC,
		Curve:          e.Curve.Name(),
		X:              bigint.EncodePadded(e.X, n),
		Y:              bigint.EncodePadded(e.Y, n),
		D:              bigint.EncodePadded(e.D, n),
	}
	return json.Marshal(w)
}

func (e *EcPrivateKey) UnmarshalJSON(data []byte) error {
	var w ecPrivateKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid EC JWK")
	}
	if w.Type != KeyTypeEC {
		return jwtguard.MalformedToken(nil, "invalid kty for EC key: %q", w.Type)
	}
	crv, ok := CurveByName(w.Curve)
	if !ok {
		return jwtguard.MalformedToken(nil, "unsupported EC curve: %q", w.Curve)
	}
	x, err := bigint.Decode(w.X)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid x value")
	}
	y, err := bigint.Decode(w.Y)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid y value")
	}
	d, err := bigint.Decode(w.D)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid d value")
	}

	e.KeyDescription = w.KeyDescription
	e.Curve = crv
	e.X = x
	e.Y = y
	e.D = d
	return nil
}
