package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken(testSecret, "acc-1", "a@b.co", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	claims, err := ParseAccessToken(testSecret, at.Token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	good, err := NewAccessToken(testSecret, "acc-1", "", 15)
	require.NoError(t, err)
	expired, err := NewAccessToken(testSecret, "acc-1", "", -1)
	require.NoError(t, err)
	noSub, err := NewAccessToken(testSecret, "", "", 15)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "acc-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"another-secret-another-secret-xx", good.Token},
		"expired":      {testSecret, expired.Token},
		"no subject":   {testSecret, noSub.Token},
		"alg none":     {testSecret, none},
		"garbage":      {testSecret, "not.a.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccessToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRefreshTokenAndHash(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.True(t, rt.Exp.After(time.Now().UTC().Add(6*24*time.Hour)))

	h := HashRefreshRaw(rt.Raw)
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, h, HashRefreshRaw(rt.Raw+"x"))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))

	_, err = HashPassword(string(make([]byte, 80)), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
