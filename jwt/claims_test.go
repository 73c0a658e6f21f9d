package jwt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAudience_MarshalsSingleValueAsString(t *testing.T) {
	data, err := json.Marshal(Audience{"api"})
	require.NoError(t, err)
	require.Equal(t, `"api"`, string(data))
}

func TestAudience_MarshalsMultipleValuesAsArray(t *testing.T) {
	data, err := json.Marshal(Audience{"api", "admin"})
	require.NoError(t, err)
	require.Equal(t, `["api","admin"]`, string(data))
}

func TestAudience_UnmarshalsEitherShape(t *testing.T) {
	var single Audience
	require.NoError(t, json.Unmarshal([]byte(`"api"`), &single))
	require.Equal(t, Audience{"api"}, single)

	var many Audience
	require.NoError(t, json.Unmarshal([]byte(`["api","admin"]`), &many))
	require.Equal(t, Audience{"api", "admin"}, many)
	require.True(t, many.Contains("admin"))
	require.False(t, many.Contains("other"))
}

func TestNumericDate_RoundTrip(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	n := NewNumericDate(now)
	require.Equal(t, now.Unix(), n.Time().Unix())
}

func TestRegisteredClaims_JSONRoundTrip(t *testing.T) {
	c := RegisteredClaims{
		Issuer:    "issuer",
		Subject:   "subject",
		Audience:  Audience{"aud1"},
		ExpiresAt: NewNumericDate(time.Unix(2000000000, 0)),
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got RegisteredClaims
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, c, got)
}

// TestRegisteredClaims_ExpiresAtZeroIsDistinctFromAbsent pins the
// exact failure mode a bare int64 NumericDate would have: epoch second
// 0 is a real instant (1970-01-01T00:00:00Z), not "no exp claim", so
// it must round-trip as a present, non-nil claim and must not be
// dropped by the "exp" member's omitempty.
func TestRegisteredClaims_ExpiresAtZeroIsDistinctFromAbsent(t *testing.T) {
	zero := NumericDate(0)
	withZero := RegisteredClaims{ExpiresAt: &zero}

	data, err := json.Marshal(withZero)
	require.NoError(t, err)
	require.Contains(t, string(data), `"exp":0`)

	var got RegisteredClaims
	require.NoError(t, json.Unmarshal(data, &got))
	require.NotNil(t, got.ExpiresAt)
	require.Equal(t, NumericDate(0), *got.ExpiresAt)

	var absent RegisteredClaims
	data, err = json.Marshal(absent)
	require.NoError(t, err)
	require.NotContains(t, string(data), `"exp"`)

	require.NoError(t, json.Unmarshal(data, &absent))
	require.Nil(t, absent.ExpiresAt)
}
