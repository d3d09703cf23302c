package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/cove/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func signHS256(t *testing.T, secret []byte, claims jwtx.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func defaultVerifier() *jwtx.HS256Verifier {
	return jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{
		Issuer:   "https://idp.example",
		Audience: []string{"authenticated"},
		Leeway:   30 * time.Second,
	})
}

func defaultClaims() jwtx.Claims {
	return jwtx.NewClaims(
		"user-123",
		"https://idp.example",
		[]string{"authenticated"},
		time.Hour,
		time.Now(),
	)
}

func TestVerifyValidToken(t *testing.T) {
	t.Parallel()

	token := signHS256(t, testSecret, defaultClaims())

	claims, err := defaultVerifier().Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "https://idp.example", claims.Issuer)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()

	v := defaultVerifier()

	t.Run("garbage input", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signHS256(t, []byte("other-secret"), defaultClaims())
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwtx.NewClaims(
			"user-123",
			"https://idp.example",
			[]string{"authenticated"},
			time.Hour,
			time.Now().Add(-2*time.Hour),
		)
		token := signHS256(t, testSecret, claims)

		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		claims := defaultClaims()
		claims.Issuer = "https://evil.example"
		token := signHS256(t, testSecret, claims)

		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		claims := defaultClaims()
		claims.Audience = jwt.ClaimStrings{"something-else"}
		token := signHS256(t, testSecret, claims)

		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := defaultClaims()
		claims.Subject = ""
		token := signHS256(t, testSecret, claims)

		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMissingSub)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, defaultClaims()).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, verr := v.Verify(unsigned)
		require.Error(t, verr)
	})
}

func TestVerifyLeeway(t *testing.T) {
	t.Parallel()

	// Token expired 10 seconds ago; 30s leeway should still accept it.
	claims := jwtx.NewClaims(
		"user-123",
		"https://idp.example",
		[]string{"authenticated"},
		time.Minute,
		time.Now().Add(-70*time.Second),
	)
	token := signHS256(t, testSecret, claims)

	_, err := defaultVerifier().Verify(token)
	require.NoError(t, err)
}
