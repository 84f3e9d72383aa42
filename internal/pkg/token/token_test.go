package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenerate_UniqueTokens(t *testing.T) {
	codec, err := NewCodec("secret")
	require.NoError(t, err)

	a, err := codec.Generate()
	require.NoError(t, err)
	b, err := codec.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	// 32 bytes base64url without padding
	assert.Len(t, a, 43)
}

func TestHash_Deterministic(t *testing.T) {
	codec, err := NewCodec("secret")
	require.NoError(t, err)

	tok, err := codec.Generate()
	require.NoError(t, err)

	assert.Equal(t, codec.Hash(tok), codec.Hash(tok))
	assert.Len(t, codec.Hash(tok), 64)
}

func TestHash_DependsOnSecret(t *testing.T) {
	first, err := NewCodec("secret-a")
	require.NoError(t, err)
	second, err := NewCodec("secret-b")
	require.NoError(t, err)

	assert.NotEqual(t, first.Hash("token"), second.Hash("token"))
}

func TestHash_NoCollisionsAcrossGeneratedTokens(t *testing.T) {
	codec, err := NewCodec("secret")
	require.NoError(t, err)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		tok, err := codec.Generate()
		require.NoError(t, err)
		hash := codec.Hash(tok)
		_, dup := seen[hash]
		require.False(t, dup, "hash collision after %d tokens", i)
		seen[hash] = struct{}{}
	}
}
