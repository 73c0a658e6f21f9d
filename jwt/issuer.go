package jwt

import (
	"bytes"
	"encoding/json"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
	"github.com/halprotocol/jwtguard/jws"
)

// IssuerConfig controls how an Issuer builds a token's header.
type IssuerConfig struct {
	Algorithm jws.Algorithm
	Type      string // defaults to "JWT" if empty
	Content   string // "cty"; left empty unless the payload needs nesting declared
}

// Issuer signs tokens with a fixed algorithm and key.
type Issuer[A any] struct {
	cfg    IssuerConfig
	signer jws.Signer
	kid    string
}

// NewIssuer builds an Issuer that signs with cfg.Algorithm using key,
// which must be suitable for signing with that algorithm. key's kid,
// if any, is written into every issued token's header so a Validator
// reading from a multi-key JWKS can resolve the right one back.
func NewIssuer[A any](cfg IssuerConfig, key jwk.Key) (*Issuer[A], error) {
	if cfg.Type == "" {
		cfg.Type = "JWT"
	}
	signer, err := jws.NewSigner(cfg.Algorithm, key)
	if err != nil {
		return nil, err
	}
	return &Issuer[A]{cfg: cfg, signer: signer, kid: key.ID()}, nil
}

// Issue builds and signs a token carrying claims merged with
// registered. Registered claim members win any name collision with
// claims: a custom claims type that happens to declare its own "exp"
// or "iss" field never overrides the values passed explicitly here.
func (i *Issuer[A]) Issue(claims A, registered RegisteredClaims) (*Jwt[A], error) {
	payload, err := mergeClaims(claims, registered)
	if err != nil {
		return nil, err
	}

	compact, err := jws.Sign(i.signer, jws.JoseHeader{Type: i.cfg.Type, Content: i.cfg.Content, KeyID: i.kid}, payload)
	if err != nil {
		return nil, err
	}

	return &Jwt[A]{
		Header:     jws.JoseHeader{Algorithm: i.cfg.Algorithm, Type: i.cfg.Type, Content: i.cfg.Content, KeyID: i.kid},
		Claims:     claims,
		Registered: registered,
		Compact:    compact,
	}, nil
}

// mergeClaims serialises claims and registered separately, then
// merges them at the JSON-object level with registered's members
// taking precedence, rather than merging at the Go struct level
// (which would require claims to embed RegisteredClaims and would not
// generalise to arbitrary custom claim types).
func mergeClaims(claims any, registered RegisteredClaims) ([]byte, error) {
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "failed to encode claims")
	}
	trimmed := bytes.TrimSpace(claimsJSON)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, jwtguard.MalformedToken(nil, "claims must serialize to a JSON object")
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(claimsJSON, &merged); err != nil {
		return nil, jwtguard.MalformedToken(err, "failed to decode claims as a JSON object")
	}

	registeredJSON, err := json.Marshal(registered)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "failed to encode registered claims")
	}
	var registeredFields map[string]json.RawMessage
	if err := json.Unmarshal(registeredJSON, &registeredFields); err != nil {
		return nil, jwtguard.MalformedToken(err, "failed to decode registered claims")
	}

	for k, v := range registeredFields {
		merged[k] = v
	}

	return json.Marshal(merged)
}
