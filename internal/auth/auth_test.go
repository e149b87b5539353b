package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateRoundTrip(t *testing.T) {
	a := New("test-secret", time.Hour)
	require.NoError(t, a.AddUser("alice", "s3cret"))

	token, err := a.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEqual(t, "", claims.UserID.String())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	a := New("test-secret", time.Hour)
	require.NoError(t, a.AddUser("alice", "s3cret"))

	_, err := a.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAddUserTwice(t *testing.T) {
	a := New("test-secret", time.Hour)
	require.NoError(t, a.AddUser("alice", "s3cret"))
	assert.ErrorIs(t, a.AddUser("alice", "other"), ErrUserExists)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	a := New("test-secret", time.Hour)

	_, err := a.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	issuer := New("secret-one", time.Hour)
	require.NoError(t, issuer.AddUser("alice", "s3cret"))
	token, err := issuer.Authenticate("alice", "s3cret")
	require.NoError(t, err)

	verifier := New("secret-two", time.Hour)
	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	a := New("test-secret", -time.Minute)
	require.NoError(t, a.AddUser("alice", "s3cret"))
	token, err := a.Authenticate("alice", "s3cret")
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
