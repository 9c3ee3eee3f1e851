package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("correct horse", "not-a-hash"))
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := NewJWTService("secret", "tracker", 60)

	token, exp, err := s.Generate(42, "alice", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	s := NewJWTService("secret", "tracker", 60)
	token, _, err := s.Generate(1, "bob", time.Minute)
	require.NoError(t, err)

	_, err = NewJWTService("other", "tracker", 60).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTService("secret", "someone-else", 60).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewJWTService("secret", "tracker", 60)
	later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
