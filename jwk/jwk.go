// Package jwk implements JSON Web Keys and JSON Web Key Sets as specified
// in RFC 7517 and RFC 7518 section 6, plus the bridge from the wire
// representation to native crypto.PublicKey / crypto.PrivateKey /
// symmetric secret values.
package jwk

import (
	"encoding/json"

	"github.com/halprotocol/jwtguard"
)

// KeyType is the "kty" discriminant, RFC 7518 section 6.1.
type KeyType string

const (
	ParamKeyType = "kty"

	KeyTypeEC  KeyType = "EC"
	KeyTypeRSA KeyType = "RSA"
	KeyTypeOct KeyType = "oct"
)

// KeyUse is the "use" parameter, RFC 7517 section 4.2.
type KeyUse string

const (
	ParamUse = "use"

	UseSignature  KeyUse = "sig"
	UseEncryption KeyUse = "enc"
)

// KeyOp is a "key_ops" member, RFC 7517 section 4.3.
type KeyOp string

const (
	ParamKeyOps = "key_ops"

	KeyOpSign       KeyOp = "sign"
	KeyOpVerify     KeyOp = "verify"
	KeyOpEncrypt    KeyOp = "encrypt"
	KeyOpDecrypt    KeyOp = "decrypt"
	KeyOpWrapKey    KeyOp = "wrapKey"
	KeyOpUnwrapKey  KeyOp = "unwrapKey"
	KeyOpDeriveKey  KeyOp = "deriveKey"
	KeyOpDeriveBits KeyOp = "deriveBits"
)

const (
	ParamAlg = "alg"
	ParamKID = "kid"
)

// Key is the interface implemented by every JWK variant: EcPublicKey,
// EcPrivateKey, RsaPublicKey, RsaPrivateKey, SymmetricKey.
type Key interface {
	Type() KeyType
	Use() KeyUse
	Operations() []KeyOp
	Algorithm() string
	ID() string

	// IsPrivate reports whether the key carries private/secret material
	// (EC/RSA private keys and symmetric keys are all "private" in the
	// sense that they must never be handed to an untrusted verifier).
	IsPrivate() bool
}

// KeyDescription holds the metadata members shared by every key variant
// (use, key_ops, alg, kid) and implements the corresponding Key getters.
// It is embedded by each concrete key type.
type KeyDescription struct {
	KeyUse        KeyUse  `json:"use,omitempty"`
	KeyOperations []KeyOp `json:"key_ops,omitempty"`
	KeyAlgorithm  string  `json:"alg,omitempty"`
	KeyID         string  `json:"kid,omitempty"`
}

func (k KeyDescription) Use() KeyUse           { return k.KeyUse }
func (k KeyDescription) Operations() []KeyOp   { return k.KeyOperations }
func (k KeyDescription) Algorithm() string     { return k.KeyAlgorithm }
func (k KeyDescription) ID() string            { return k.KeyID }

// MarshalKey marshals k into its JWK JSON representation.
func MarshalKey(k Key) ([]byte, error) {
	return json.Marshal(k)
}

// UnmarshalKey unmarshals JSON data as a JWK, returning the concrete
// variant selected by "kty" (and, for EC/RSA, whether a private-key-only
// member is present). kty="OKP" or any other value is a decode error —
// this module supports only EC, RSA and oct.
func UnmarshalKey(data []byte) (Key, error) {
	var probe struct {
		Type KeyType `json:"kty"`
		D    string  `json:"d,omitempty"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, jwtguard.MalformedToken(err, "invalid JWK JSON")
	}

	switch probe.Type {
	case KeyTypeEC:
		if probe.D != "" {
			var k EcPrivateKey
			if err := json.Unmarshal(data, &k); err != nil {
				return nil, err
			}
			return &k, nil
		}
		var k EcPublicKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, err
		}
		return &k, nil

	case KeyTypeRSA:
		if probe.D != "" {
			var k RsaPrivateKey
			if err := json.Unmarshal(data, &k); err != nil {
				return nil, err
			}
			return &k, nil
		}
		var k RsaPublicKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, err
		}
		return &k, nil

	case KeyTypeOct:
		var k SymmetricKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, err
		}
		return &k, nil

	default:
		return nil, jwtguard.MalformedToken(nil, "unsupported kty: %q", probe.Type)
	}
}

// IsPrivate is implemented per-variant; see ec.go, rsa.go, oct.go.

// SuitableForVerification reports whether k may be used to verify a
// signature produced with algorithm alg, per spec: use unset or "sig",
// key_ops unset or containing "verify", alg unset or equal to alg.
func SuitableForVerification(k Key, alg string) bool {
	return suitable(k, alg, KeyOpVerify)
}

// SuitableForSigning reports whether k may be used to sign with
// algorithm alg, per spec: use unset or "sig", key_ops unset or
// containing "sign", alg unset or equal to alg.
func SuitableForSigning(k Key, alg string) bool {
	return suitable(k, alg, KeyOpSign)
}

func suitable(k Key, alg string, op KeyOp) bool {
	if use := k.Use(); use != "" && use != UseSignature {
		return false
	}
	if ops := k.Operations(); len(ops) > 0 {
		found := false
		for _, o := range ops {
			if o == op {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if ka := k.Algorithm(); ka != "" && ka != alg {
		return false
	}
	return true
}
