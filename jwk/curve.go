package jwk

import (
	"crypto/elliptic"
	"math/big"
)

// EcCurve is the closed set of curves this module supports: P-256,
// P-384 and P-521. There is no general "any elliptic.Curve" escape
// hatch — every EC operation in this module goes through one of these
// three cached specs.
type EcCurve struct {
	name       string
	curve      elliptic.Curve
	coordBytes int
}

var (
	P256 = EcCurve{name: "P-256", curve: elliptic.P256(), coordBytes: 32}
	P384 = EcCurve{name: "P-384", curve: elliptic.P384(), coordBytes: 48}
	P521 = EcCurve{name: "P-521", curve: elliptic.P521(), coordBytes: 66}
)

var curvesByName = map[string]EcCurve{
	P256.name: P256,
	P384.name: P384,
	P521.name: P521,
}

// CurveByName looks up an EcCurve by its RFC 7518 "crv" name.
func CurveByName(name string) (EcCurve, bool) {
	c, ok := curvesByName[name]
	return c, ok
}

// CurveByBitSize looks up an EcCurve by its native field bit size, used
// when deriving a JWK's "crv" from a *ecdsa.PublicKey that didn't come
// through this package (native -> JWK direction).
func CurveByBitSize(bitSize int) (EcCurve, bool) {
	switch bitSize {
	case 256:
		return P256, true
	case 384:
		return P384, true
	case 521:
		return P521, true
	default:
		return EcCurve{}, false
	}
}

// Name returns the RFC 7518 "crv" name.
func (c EcCurve) Name() string { return c.name }

// Curve returns the native elliptic.Curve parameter spec.
func (c EcCurve) Curve() elliptic.Curve { return c.curve }

// CoordinateLength returns the fixed byte length of x, y and d (and half
// the R||S signature length) for this curve: 32/48/66.
func (c EcCurve) CoordinateLength() int { return c.coordBytes }

// Order returns the curve's group order N.
func (c EcCurve) Order() *big.Int { return c.curve.Params().N }

// IsOnCurve reports whether the affine point (x, y) satisfies the
// curve equation y^2 = x^3 + ax + b (mod p), independent of whatever
// checks the underlying crypto provider itself performs. elliptic.Curve
// in the standard library always uses a = -3, matching NIST P-curves.
func (c EcCurve) IsOnCurve(x, y *big.Int) bool {
	if x.Sign() < 0 || y.Sign() < 0 {
		return false
	}
	p := c.curve.Params().P
	if x.Cmp(p) >= 0 || y.Cmp(p) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, p)

	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, c.curve.Params().B)
	rhs.Mod(rhs, p)

	return lhs.Cmp(rhs) == 0
}
