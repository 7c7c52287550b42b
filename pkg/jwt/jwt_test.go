package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "biz-1", "bookkeeping-api", 60)
	require.NoError(t, err)

	businessID, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "biz-1", businessID)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secret", "biz-1", "bookkeeping-api", 60)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secret", "biz-1", "bookkeeping-api", -1)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "biz-1", "", 60)
	assert.Error(t, err)
}
