package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret", "HS256", 15*time.Minute, 30*24*time.Hour)
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestService()

	token, err := s.Issue("user-123", TokenKindAccess, time.Minute)
	require.NoError(t, err)

	subject, err := s.Verify(token, TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestJWTService_KindMismatch(t *testing.T) {
	s := newTestService()

	access, err := s.Issue("user-123", TokenKindAccess, time.Minute)
	require.NoError(t, err)
	refresh, err := s.Issue("user-123", TokenKindRefresh, time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(access, TokenKindRefresh)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)

	_, err = s.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
}

func TestJWTService_Expired(t *testing.T) {
	s := newTestService()

	token, err := s.Issue("user-123", TokenKindAccess, -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_EmptySubject(t *testing.T) {
	s := newTestService()

	_, err := s.Issue("", TokenKindAccess, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestJWTService_TamperedToken(t *testing.T) {
	s := newTestService()

	token, err := s.Issue("user-123", TokenKindAccess, time.Minute)
	require.NoError(t, err)

	other := NewJWTService("different-secret", "HS256", time.Minute, time.Minute)
	_, err = other.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Verify(token+"x", TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Verify("not-a-jwt", TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_UniqueTokensSameInstant(t *testing.T) {
	s := newTestService()

	first, err := s.Issue("user-123", TokenKindAccess, time.Minute)
	require.NoError(t, err)
	second, err := s.Issue("user-123", TokenKindAccess, time.Minute)
	require.NoError(t, err)

	// jti guarantees distinct tokens even within the same second.
	assert.NotEqual(t, first, second)
}
