package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeClaims_PopulatesBothCustomAndRegistered(t *testing.T) {
	payload := []byte(`{"role":"admin","iss":"issuer.example","aud":"api"}`)

	claims, registered, err := decodeClaims[customClaims](payload)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "issuer.example", registered.Issuer)
	require.Equal(t, Audience{"api"}, registered.Audience)
}

func TestDecodeClaims_RejectsMalformedPayload(t *testing.T) {
	_, _, err := decodeClaims[customClaims]([]byte(`not json`))
	require.Error(t, err)
}
