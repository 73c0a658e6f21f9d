package jwtguard_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
	"github.com/halprotocol/jwtguard/jwks"
	"github.com/halprotocol/jwtguard/jws"
	"github.com/halprotocol/jwtguard/jwt"
)

type sessionClaims struct {
	Scope string `json:"scope"`
}

// TestAcceptance_IssueFetchValidate exercises the whole stack the way
// an application wires it together: an issuer signs with an RSA
// private key, a JWKS endpoint publishes the matching public key, a
// background Refresher keeps that endpoint's key set current behind
// an errgroup-managed goroutine, and a Validator resolves keys from
// the refresher to verify tokens it never saw signed.
func TestAcceptance_IssueFetchValidate(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, jwk.MinRSAModulusBits)
	require.NoError(t, err)

	kid, err := jwtguard.NewKid("acceptance-2026-07")
	require.NoError(t, err)
	desc := jwk.KeyDescription{KeyID: kid.String(), KeyUse: jwk.UseSignature}

	privateJWK, err := jwk.RsaPrivateKeyFromNative(priv, desc)
	require.NoError(t, err)
	publicJWK, err := jwk.RsaPublicKeyFromNative(&priv.PublicKey, desc)
	require.NoError(t, err)

	jwksBody, err := json.Marshal(jwk.Set{publicJWK})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jwksBody)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := jwks.DefaultRefresherConfig()
	cfg.InitialBackoff = 10 * time.Millisecond
	cfg.RefreshInterval = 20 * time.Millisecond
	cfg.MinRefreshInterval = 0

	refresher, err := jwks.NewRefresher(ctx, jwks.NewHTTPFetcher(server.URL, nil), cfg)
	require.NoError(t, err)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return refresher.Run(groupCtx) })

	issuer, err := jwt.NewIssuer[sessionClaims](jwt.IssuerConfig{Algorithm: jws.RS256}, privateJWK)
	require.NoError(t, err)

	issuedAt := time.Now()
	token, err := issuer.Issue(sessionClaims{Scope: "read:reports"}, jwt.RegisteredClaims{
		Issuer:    "https://auth.example",
		Subject:   "user-42",
		Audience:  jwt.Audience{"reports-api"},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.Registered.ID)

	validator := jwt.NewValidator[sessionClaims](jwt.ValidatorConfig{
		AllowedAlgorithms: []jws.Algorithm{jws.RS256},
		RequiredIssuer:    "https://auth.example",
		RequiredAudience:  "reports-api",
		ClockSkew:         time.Second,
	}, refresher)

	got, err := validator.Validate(ctx, token.Compact)
	require.NoError(t, err)
	require.Equal(t, "read:reports", got.Claims.Scope)
	require.Equal(t, "user-42", got.Registered.Subject)
	require.Equal(t, token.Registered.ID, got.Registered.ID)

	cancel()
	err = group.Wait()
	require.ErrorIs(t, err, context.Canceled)
}

// TestAcceptance_SharedSecretTransportedAsBase64Url demonstrates the
// encoded-at-rest path for a symmetric secret: operators hand out
// HMAC secrets as base64url text (in config files, environment
// variables), never as raw bytes, so Base64UrlString is the boundary
// type that validates that shape before anything touches crypto/hmac.
func TestAcceptance_SharedSecretTransportedAsBase64Url(t *testing.T) {
	secret := []byte("a shared secret of reasonable length for HS256")
	encoded := jwtguard.FromBytes(secret)

	transported, err := jwtguard.NewBase64UrlString(encoded.String())
	require.NoError(t, err)
	decoded, err := transported.Decode()
	require.NoError(t, err)
	require.Equal(t, secret, decoded)

	key := &jwk.SymmetricKey{KeyDescription: jwk.KeyDescription{KeyID: "shared-1"}, Bytes: decoded}
	issuer, err := jwt.NewIssuer[sessionClaims](jwt.IssuerConfig{Algorithm: jws.HS256}, key)
	require.NoError(t, err)

	tok, err := issuer.Issue(sessionClaims{Scope: "read:self"}, jwt.RegisteredClaims{})
	require.NoError(t, err)

	validator := jwt.NewValidator[sessionClaims](jwt.ValidatorConfig{
		AllowedAlgorithms: []jws.Algorithm{jws.HS256},
	}, jwks.NewStatic(key))

	got, err := validator.Validate(context.Background(), tok.Compact)
	require.NoError(t, err)
	require.Equal(t, "read:self", got.Claims.Scope)
}

func TestAcceptance_RejectsEmptyKid(t *testing.T) {
	_, err := jwtguard.NewKid("")
	require.Error(t, err)
}
