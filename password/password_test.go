package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	plain := "my-secure-password"
	hash, err := Hash(plain)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, plain, hash)
	assert.LessOrEqual(t, len(hash), 128)
}

func TestHashTooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("A", 100))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	hash, _ := Hash("my-secure-password")

	assert.True(t, Check("my-secure-password", hash))
	assert.False(t, Check("wrong-password", hash))
	assert.False(t, Check("my-secure-password", "not-a-hash"))
}
