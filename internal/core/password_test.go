// AngelaMos | 2026
// password_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("changeme123")
	require.NoError(t, err)
	assert.Contains(t, h, "$argon2id$")

	ok, upgraded, err := VerifyPassword("changeme123", h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, upgraded)

	ok, _, err = VerifyPassword("changeme124", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPassword_UpgradesOutdatedParams(t *testing.T) {
	old := DefaultArgon2
	old.Time = 2

	h, err := old.Hash("changeme123")
	require.NoError(t, err)

	ok, upgraded, err := VerifyPassword("changeme123", h)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotEmpty(t, upgraded)

	ok, again, err := VerifyPassword("changeme123", upgraded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, again)
}

func TestPassword_RejectsMalformedHash(t *testing.T) {
	_, _, err := VerifyPassword("x", "$bcrypt$whatever")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe_MissingHash(t *testing.T) {
	empty := ""
	for _, stored := range []*string{nil, &empty} {
		ok, upgraded, err := VerifyPasswordTimingSafe("anything", stored)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, upgraded)
	}
}

func TestNewSessionToken(t *testing.T) {
	a, digestA, err := NewSessionToken()
	require.NoError(t, err)
	b, _, err := NewSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, HashToken(a), digestA)
	assert.Len(t, digestA, 64)
	assert.NotContains(t, digestA, a)
}
