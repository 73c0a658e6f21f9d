package jwk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalKey_UnsupportedKty(t *testing.T) {
	_, err := UnmarshalKey([]byte(`{"kty":"OKP","crv":"Ed25519","x":"AQ"}`))
	require.Error(t, err)
}

func TestSuitableForVerification(t *testing.T) {
	k := &SymmetricKey{KeyDescription: KeyDescription{
		KeyUse:        UseSignature,
		KeyOperations: []KeyOp{KeyOpVerify},
		KeyAlgorithm:  "HS256",
	}}

	require.True(t, SuitableForVerification(k, "HS256"))
	require.False(t, SuitableForVerification(k, "HS384"))
}

func TestSuitableForVerification_WrongUse(t *testing.T) {
	k := &SymmetricKey{KeyDescription: KeyDescription{KeyUse: UseEncryption}}
	require.False(t, SuitableForVerification(k, "HS256"))
}

func TestSuitableForSigning_NoConstraintsMeansAnyAlg(t *testing.T) {
	k := &SymmetricKey{}
	require.True(t, SuitableForSigning(k, "HS256"))
	require.True(t, SuitableForSigning(k, "HS512"))
}

func TestSuitableForVerification_MissingKeyOp(t *testing.T) {
	k := &SymmetricKey{KeyDescription: KeyDescription{
		KeyOperations: []KeyOp{KeyOpSign},
	}}
	require.False(t, SuitableForVerification(k, "HS256"))
}
