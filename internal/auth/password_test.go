package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, VerifyPassword("s3cret-password", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same-password", first))
	assert.True(t, VerifyPassword("same-password", second))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$bcrypt$v=19$m=65536,t=1,p=4$abc$def"))
	assert.False(t, VerifyPassword("anything", "$argon2id$v=19$m=65536,t=1,p=4$!!!$def"))
}
