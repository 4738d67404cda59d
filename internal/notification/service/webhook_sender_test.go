package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSender(t *testing.T, config SenderConfig) WebhookSender {
	t.Helper()

	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	sender, err := NewWebhookSender(config, createTestLogger())
	require.NoError(t, err)
	return sender
}

func TestWebhookSender_Configured(t *testing.T) {
	t.Run("Success_WithURL", func(t *testing.T) {
		sender := newTestSender(t, SenderConfig{URL: "https://hooks.example.com/replydesk"})
		assert.True(t, sender.Configured())
	})

	t.Run("Success_WithoutURL", func(t *testing.T) {
		sender := newTestSender(t, SenderConfig{})
		assert.False(t, sender.Configured())
	})
}

func TestWebhookSender_Send(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"items":[{"review":"Lange Wartezeit","insights":"Terminvergabe prüfen"}]}`)

	t.Run("Success_SendsEventWithHeaders", func(t *testing.T) {
		var gotMethod, gotContentType, gotEventType, gotSignature string
		var gotBody []byte

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			gotEventType = r.Header.Get("X-Replydesk-Event")
			gotSignature = r.Header.Get("X-Replydesk-Signature")
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			gotBody = body
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sender := newTestSender(t, SenderConfig{URL: server.URL})

		err := sender.Send(ctx, "insights.extracted", payload)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "insights.extracted", gotEventType)
		assert.Empty(t, gotSignature)
		assert.Equal(t, payload, gotBody)
	})

	t.Run("Success_SignsPayloadWhenKeyConfigured", func(t *testing.T) {
		var gotSignature string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSignature = r.Header.Get("X-Replydesk-Signature")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sender := newTestSender(t, SenderConfig{URL: server.URL, SigningKey: "shared-secret"})

		err := sender.Send(ctx, "insights.extracted", payload)
		require.NoError(t, err)

		key := make([]byte, 32)
		reader := hkdf.New(sha256.New, []byte("shared-secret"), nil, []byte("webhook-signing-v1"))
		_, err = io.ReadFull(reader, key)
		require.NoError(t, err)

		mac := hmac.New(sha256.New, key)
		mac.Write(payload)
		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)
	})

	t.Run("Success_AcceptsAny2xxStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sender := newTestSender(t, SenderConfig{URL: server.URL})
		assert.NoError(t, sender.Send(ctx, "insights.extracted", payload))
	})

	t.Run("Error_NotConfigured", func(t *testing.T) {
		sender := newTestSender(t, SenderConfig{})

		err := sender.Send(ctx, "insights.extracted", payload)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("Error_UpstreamStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("receiver exploded"))
		}))
		defer server.Close()

		sender := newTestSender(t, SenderConfig{URL: server.URL})

		err := sender.Send(ctx, "insights.extracted", payload)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "receiver exploded")
	})

	t.Run("Error_TransportFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		sender := newTestSender(t, SenderConfig{URL: server.URL})

		err := sender.Send(ctx, "insights.extracted", payload)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})

	t.Run("Error_Timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		sender := newTestSender(t, SenderConfig{URL: server.URL, Timeout: 50 * time.Millisecond})

		err := sender.Send(ctx, "insights.extracted", payload)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})
}
