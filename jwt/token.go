package jwt

import (
	"encoding/json"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jws"
)

// Jwt is a decoded, verified JSON Web Token whose custom claims are
// typed as A. The zero value is not usable; obtain one from
// Validator.Validate or Issuer.Issue.
type Jwt[A any] struct {
	Header     jws.JoseHeader
	Claims     A
	Registered RegisteredClaims
	Compact    string
}

// decodeClaims unmarshals payload into both a caller-typed A and
// RegisteredClaims. Decoding twice rather than embedding
// RegisteredClaims into A keeps A free to be any JSON object shape,
// including one that happens to redeclare a registered claim name for
// its own purposes.
func decodeClaims[A any](payload []byte) (A, RegisteredClaims, error) {
	var claims A
	var registered RegisteredClaims

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, registered, jwtguard.MalformedToken(err, "invalid claims payload")
	}
	if err := json.Unmarshal(payload, &registered); err != nil {
		return claims, registered, jwtguard.MalformedToken(err, "invalid claims payload")
	}
	return claims, registered, nil
}
