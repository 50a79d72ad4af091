package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenCodec(t *testing.T) {
	_, err := NewTokenCodec("", "HS256", 0)
	assert.Error(t, err)

	_, err = NewTokenCodec("secret", "RS256", 0)
	assert.Error(t, err)

	_, err = NewTokenCodec("secret", "none", 0)
	assert.Error(t, err)

	codec, err := NewTokenCodec("secret", "HS384", 0)
	require.NoError(t, err)
	assert.Equal(t, "HS384", codec.method.Alg())
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)

	token, err := codec.Sign("alice@example.com")
	require.NoError(t, err)

	subject, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestSignWithoutTTLHasNoExpiry(t *testing.T) {
	codec, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)

	token, err := codec.Sign("alice@example.com")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.NotContains(t, claims, "exp")
	assert.Equal(t, "alice@example.com", claims["sub"])
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)
	other, err := NewTokenCodec("another-secret", "HS256", 0)
	require.NoError(t, err)

	token, err := other.Sign("alice@example.com")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	hs256, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)
	hs512, err := NewTokenCodec("secret", "HS512", 0)
	require.NoError(t, err)

	token, err := hs512.Sign("alice@example.com")
	require.NoError(t, err)

	_, err = hs256.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	codec, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "alice@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	codec, err := NewTokenCodec("secret", "HS256", 0)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iat": time.Now().Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyHonoursTTL(t *testing.T) {
	codec, err := NewTokenCodec("secret", "HS256", time.Hour)
	require.NoError(t, err)

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	token, err := codec.Sign("alice@example.com")
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(30 * time.Minute) }
	_, err = codec.Verify(token)
	assert.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
