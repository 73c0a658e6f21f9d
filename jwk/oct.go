package jwk

import (
	"encoding/json"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/internal/encoding"
)

// SymmetricKey is a JWK of kty="oct" carrying a raw secret, per RFC 7517
// appendix A.3. It is used only with the HMAC family (HS256/384/512);
// nothing else in this module treats "oct" as suitable.
type SymmetricKey struct {
	KeyDescription
	Bytes []byte
}

func (s *SymmetricKey) Type() KeyType   { return KeyTypeOct }
func (s *SymmetricKey) IsPrivate() bool { return true }

type symmetricKeyWire struct {
	KeyDescription
	Type KeyType `json:"kty"`
	K    string  `json:"k"`
}

func (s *SymmetricKey) MarshalJSON() ([]byte, error) {
	w := symmetricKeyWire{
		KeyDescription: s.KeyDescription,
		Type:           KeyTypeOct,
		K:              encoding.Encode(s.Bytes),
	}
	return json.Marshal(w)
}

func (s *SymmetricKey) UnmarshalJSON(data []byte) error {
	var w symmetricKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return jwtguard.MalformedToken(err, "invalid oct JWK")
	}
	if w.Type != KeyTypeOct {
		return jwtguard.MalformedToken(nil, "invalid kty for oct key: %q", w.Type)
	}
	raw, err := encoding.Decode(w.K)
	if err != nil {
		return jwtguard.MalformedToken(err, "invalid k value")
	}

	s.KeyDescription = w.KeyDescription
	s.Bytes = raw
	return nil
}
