package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	tokenService := NewTokenService()

	t.Run("TokenShape", func(t *testing.T) {
		token, err := tokenService.GenerateToken()
		require.NoError(t, err)

		// 18 bytes encode to 24 URL-safe characters without padding.
		assert.Len(t, token, 24)
		assert.False(t, strings.ContainsAny(token, "+/="), "token must be URL-safe without padding")
	})

	t.Run("TokensAreUnique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			token, err := tokenService.GenerateToken()
			require.NoError(t, err)
			assert.False(t, seen[token], "token collision: %s", token)
			seen[token] = true
		}
	})
}
