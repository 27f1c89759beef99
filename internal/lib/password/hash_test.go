package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hashed, err := Hash("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "password123", hashed)

	assert.NoError(t, Compare(hashed, "password123"))
	assert.Error(t, Compare(hashed, "wrongpassword"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)
	second, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
