package jws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
)

func TestSignAndParse_RoundTrip(t *testing.T) {
	key := &jwk.SymmetricKey{Bytes: []byte("a shared secret of reasonable length")}
	signer, err := NewSigner(HS256, key)
	require.NoError(t, err)

	compact, err := Sign(signer, JoseHeader{Type: "JWT"}, []byte(`{"sub":"123"}`))
	require.NoError(t, err)

	msg, err := Parse(compact)
	require.NoError(t, err)
	require.Equal(t, HS256, msg.Header.Algorithm)
	require.Equal(t, "JWT", msg.Header.Type)
	require.Equal(t, `{"sub":"123"}`, string(msg.Payload))

	verifier, err := NewVerifier(HS256, key)
	require.NoError(t, err)
	require.NoError(t, verifier.Verify(msg.SigningInput, msg.Signature))
}

func TestParse_RejectsWrongSegmentCount(t *testing.T) {
	_, err := Parse("only.two")
	require.Error(t, err)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	headerSeg := newBase64Segment([]byte(`{"alg":"none"}`))
	payloadSeg := newBase64Segment([]byte(`{}`))
	_, err := Parse(headerSeg + "." + payloadSeg + ".AA")
	require.Error(t, err)
	var jerr *jwtguard.Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, jwtguard.KindMalformedToken, jerr.Kind)
}

func TestParse_RejectsMissingAlg(t *testing.T) {
	headerSeg := newBase64Segment([]byte(`{"typ":"JWT"}`))
	payloadSeg := newBase64Segment([]byte(`{}`))
	_, err := Parse(headerSeg + "." + payloadSeg + ".AA")
	require.Error(t, err)
}

func TestParse_RejectsUnknownAlgorithm(t *testing.T) {
	headerSeg := newBase64Segment([]byte(`{"alg":"FOO"}`))
	payloadSeg := newBase64Segment([]byte(`{}`))
	_, err := Parse(headerSeg + "." + payloadSeg + ".AA")
	require.Error(t, err)
	var jerr *jwtguard.Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, jwtguard.KindMalformedToken, jerr.Kind)
}

func TestNewTokenString_ValidatesShape(t *testing.T) {
	_, err := NewTokenString("not-a-valid-jws")
	require.Error(t, err)

	ts, err := NewTokenString("aGVhZGVy.cGF5bG9hZA.c2ln")
	require.NoError(t, err)
	require.Equal(t, "aGVhZGVy.cGF5bG9hZA.c2ln", ts.String())
}
