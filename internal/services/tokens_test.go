package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "studylog",
		TTL:        24 * time.Hour,
		BcryptCost: 4, // min cost keeps the test fast
	}
}

func TestHashPassword_Roundtrip(t *testing.T) {
	tokens := testTokenService()

	hash, err := tokens.HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, tokens.VerifyPassword("correct horse", hash))
	assert.False(t, tokens.VerifyPassword("wrong horse", hash))
}

func TestCreateToken_Roundtrip(t *testing.T) {
	tokens := testTokenService()
	grade, class := 1, 2

	signed, expiresAt, err := tokens.CreateToken(TokenClaims{
		UserID: "user-1",
		Email:  "alice@example.com",
		Role:   "teacher",
		Grade:  &grade,
		Class:  &class,
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "teacher", claims.Role)
	require.NotNil(t, claims.Grade)
	require.NotNil(t, claims.Class)
	assert.Equal(t, 1, *claims.Grade)
	assert.Equal(t, 2, *claims.Class)
}

func TestCreateToken_NoClassAssignment(t *testing.T) {
	tokens := testTokenService()

	signed, _, err := tokens.CreateToken(TokenClaims{
		UserID: "user-2",
		Email:  "bob@example.com",
		Role:   "student",
	})
	require.NoError(t, err)

	claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.Nil(t, claims.Grade)
	assert.Nil(t, claims.Class)
}

func TestParseToken_Expired(t *testing.T) {
	tokens := testTokenService()
	tokens.TTL = -time.Minute

	signed, _, err := tokens.CreateToken(TokenClaims{UserID: "user-1", Role: "student"})
	require.NoError(t, err)

	_, err = tokens.ParseToken(signed)
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	assert.Equal(t, 401, serr.Status)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	tokens := testTokenService()

	signed, _, err := tokens.CreateToken(TokenClaims{UserID: "user-1", Role: "student"})
	require.NoError(t, err)

	other := tokens
	other.Secret = []byte("a-different-secret")
	_, err = other.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	issuer := testTokenService()
	issuer.Issuer = "someone-else"

	signed, _, err := issuer.CreateToken(TokenClaims{UserID: "user-1", Role: "student"})
	require.NoError(t, err)

	_, err = testTokenService().ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := testTokenService().ParseToken("not.a.token")
	assert.Error(t, err)
}
