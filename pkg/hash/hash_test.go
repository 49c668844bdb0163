package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed)
	assert.True(t, IsHashed(hashed))
	assert.False(t, IsHashed("secret"))

	assert.True(t, h.Compare(hashed, "secret"))
	assert.False(t, h.Compare(hashed, "Secret"))
	assert.False(t, h.Compare("secret", "secret"))
}
