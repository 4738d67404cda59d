// Package service provides webhook delivery for notification events.
package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

const (
	eventTypeHeader = "X-Replydesk-Event"
	signatureHeader = "X-Replydesk-Signature"

	// signingKeyInfo binds derived signing keys to this header format.
	signingKeyInfo = "webhook-signing-v1"

	defaultSendTimeout = 3 * time.Second
)

// SenderConfig holds webhook delivery settings.
type SenderConfig struct {
	URL        string
	Timeout    time.Duration
	SigningKey string
}

// WebhookSender delivers event payloads to the configured webhook URL.
type WebhookSender interface {
	// Configured reports whether a webhook URL is set. Callers drop events
	// instead of sending when it returns false.
	Configured() bool
	// Send POSTs the payload with the event type header and, when a signing
	// key is configured, an HMAC-SHA256 signature header.
	Send(ctx context.Context, eventType string, payload []byte) error
}

// webhookSender implements WebhookSender over a plain HTTP client.
type webhookSender struct {
	config     SenderConfig
	signingKey []byte
	httpClient *http.Client
	logger     *slog.Logger
}

// Configured reports whether a webhook URL is set.
func (s *webhookSender) Configured() bool {
	return s.config.URL != ""
}

// Send delivers one event. Non-2xx responses and transport failures are
// returned as upstream errors so the dispatcher can retry.
func (s *webhookSender) Send(ctx context.Context, eventType string, payload []byte) error {
	if s.config.URL == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "webhook URL is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(err, "failed to build webhook request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventTypeHeader, eventType)
	if len(s.signingKey) > 0 {
		req.Header.Set(signatureHeader, s.sign(payload))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUpstream, "webhook request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.Wrapf(apperrors.ErrUpstream, "webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	s.logger.Debug("webhook delivered",
		slog.String("event_type", eventType),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}

// sign computes a hex HMAC-SHA256 over the payload with the derived key.
func (s *webhookSender) sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write(payload) //nolint:errcheck
	return hex.EncodeToString(mac.Sum(nil))
}

// deriveSigningKey derives the HMAC key from the configured secret with
// HKDF-SHA256.
func deriveSigningKey(secret string) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(signingKeyInfo))

	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive webhook signing key")
	}
	return key, nil
}

// NewWebhookSender creates a webhook sender. The signing key is derived once
// at construction; an empty key disables the signature header.
func NewWebhookSender(config SenderConfig, logger *slog.Logger) (WebhookSender, error) {
	if config.Timeout <= 0 {
		config.Timeout = defaultSendTimeout
	}

	var signingKey []byte
	if config.SigningKey != "" {
		key, err := deriveSigningKey(config.SigningKey)
		if err != nil {
			return nil, err
		}
		signingKey = key
	}

	return &webhookSender{
		config:     config,
		signingKey: signingKey,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}
