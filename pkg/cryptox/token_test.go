package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/aussiebroadwan/cove/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces url-safe base64 of the right length", func(t *testing.T) {
		token, err := cryptox.GenerateToken(cryptox.TokenSize128)
		require.NoError(t, err)
		require.Len(t, token, 22)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, cryptox.TokenSize128)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := cryptox.GenerateToken(0)
		require.Error(t, err)

		_, err = cryptox.GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			token, err := cryptox.GenerateToken(cryptox.TokenSize128)
			require.NoError(t, err)

			_, dup := seen[token]
			require.False(t, dup, "duplicate token generated")
			seen[token] = struct{}{}
		}
	})
}

func TestMustGenerateToken(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		token := cryptox.MustGenerateToken(cryptox.TokenSize256)
		require.Len(t, token, 43)
	})
}
