package sealed

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

// generateKeeperURL generates a base64key:// URL for testing.
func generateKeeperURL(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestIsSealed(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"sealed value", "sealed:Y2lwaGVydGV4dA==", true},
		{"plain value", "my-plain-secret", false},
		{"empty value", "", false},
		{"prefix only", "sealed:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSealed(tt.value))
		})
	}
}

func TestNewResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LocalKeeper", func(t *testing.T) {
		resolver, err := NewResolver(ctx, generateKeeperURL(t))
		require.NoError(t, err)
		require.NotNil(t, resolver)
		assert.NoError(t, resolver.Close())
	})

	t.Run("Error_InvalidURL", func(t *testing.T) {
		resolver, err := NewResolver(ctx, "invalid://url")
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
		assert.Nil(t, resolver)
	})

	t.Run("Disabled_EmptyURL", func(t *testing.T) {
		resolver, err := NewResolver(ctx, "")
		require.NoError(t, err)
		require.NotNil(t, resolver)
		assert.NoError(t, resolver.Close())
	})
}

func TestResolver_SealAndResolve(t *testing.T) {
	ctx := context.Background()
	resolver, err := NewResolver(ctx, generateKeeperURL(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, resolver.Close())
	}()

	t.Run("RoundTrip", func(t *testing.T) {
		sealed, err := resolver.Seal(ctx, "my-refresh-token")
		require.NoError(t, err)
		assert.True(t, IsSealed(sealed))

		plaintext, err := resolver.Resolve(ctx, sealed)
		require.NoError(t, err)
		assert.Equal(t, "my-refresh-token", plaintext)
	})

	t.Run("PlainValuePassesThrough", func(t *testing.T) {
		plaintext, err := resolver.Resolve(ctx, "plain-value")
		require.NoError(t, err)
		assert.Equal(t, "plain-value", plaintext)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "sealed:not base64!!")
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		sealed, err := resolver.Seal(ctx, "my-refresh-token")
		require.NoError(t, err)

		other, err := NewResolver(ctx, generateKeeperURL(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, other.Close())
		}()

		_, err = other.Resolve(ctx, sealed)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})
}

func TestDisabledResolver(t *testing.T) {
	ctx := context.Background()
	resolver, err := NewResolver(ctx, "")
	require.NoError(t, err)

	t.Run("PlainValuePassesThrough", func(t *testing.T) {
		plaintext, err := resolver.Resolve(ctx, "plain-value")
		require.NoError(t, err)
		assert.Equal(t, "plain-value", plaintext)
	})

	t.Run("Error_SealedValueWithoutKeeper", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "sealed:Y2lwaGVydGV4dA==")
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("Error_SealWithoutKeeper", func(t *testing.T) {
		_, err := resolver.Seal(ctx, "anything")
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})
}
