package jwks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halprotocol/jwtguard/jwk"
)

func TestResolve_ByKid(t *testing.T) {
	a := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "a"}, Bytes: []byte("secret-a")}
	b := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "b"}, Bytes: []byte("secret-b")}
	store := NewStatic(a, b)

	got, err := Resolve(context.Background(), store, "HS256", "b")
	require.NoError(t, err)
	require.Same(t, b, got)
}

func TestResolve_AmbiguousKidIsError(t *testing.T) {
	a := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "dup"}, Bytes: []byte("secret-a")}
	b := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "dup"}, Bytes: []byte("secret-b")}
	store := NewStatic(a, b)

	_, err := Resolve(context.Background(), store, "HS256", "dup")
	require.Error(t, err)
}

func TestResolve_NoKidRequiresExactlyOneSuitable(t *testing.T) {
	a := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "a"}, Bytes: []byte("secret-a")}
	store := NewStatic(a)

	got, err := Resolve(context.Background(), store, "HS256", "")
	require.NoError(t, err)
	require.Same(t, a, got)
}

func TestResolve_NoKidWithMultipleSuitableIsError(t *testing.T) {
	a := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "a"}, Bytes: []byte("secret-a")}
	b := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "b"}, Bytes: []byte("secret-b")}
	store := NewStatic(a, b)

	_, err := Resolve(context.Background(), store, "HS256", "")
	require.Error(t, err)
}

func TestResolve_FiltersByAlgorithm(t *testing.T) {
	a := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "a", KeyAlgorithm: "HS384"}, Bytes: []byte("secret-a")}
	store := NewStatic(a)

	_, err := Resolve(context.Background(), store, "HS256", "a")
	require.Error(t, err)
}
