package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssuedTokenVerifies(t *testing.T) {
	signer := NewSigner(testSecret, "fitsync", time.Hour)
	token, err := signer.IssueToken("user-42")
	require.NoError(t, err)

	userID, err := NewJWTVerifier(testSecret, "fitsync").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "fitsync")

	_, err := verifier.Verify("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = verifier.Verify("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongKey, err := NewSigner("other-secret", "fitsync", time.Hour).IssueToken("user-42")
	require.NoError(t, err)
	_, err = verifier.Verify(wrongKey)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewSigner(testSecret, "someone-else", time.Hour).IssueToken("user-42")
	require.NoError(t, err)
	_, err = verifier.Verify(wrongIssuer)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	signer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := signer.IssueToken("user-42")
	require.NoError(t, err)

	_, err = NewJWTVerifier(testSecret, "").Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyFallsBackToSubject(t *testing.T) {
	c := jwt.RegisteredClaims{
		Subject:   "firebase-uid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	require.NoError(t, err)

	userID, err := NewJWTVerifier(testSecret, "").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "firebase-uid", userID)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	c := jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTVerifier(testSecret, "").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
