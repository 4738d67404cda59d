package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/allisson/replydesk/internal/errors"
	platformDomain "github.com/allisson/replydesk/internal/platform/domain"
)

const defaultReviewsBaseURL = "https://mybusiness.googleapis.com/v4"

// ReviewClientConfig carries endpoint and timeout settings for the review
// platform client.
type ReviewClientConfig struct {
	BaseURL      string
	FetchTimeout time.Duration
	WriteTimeout time.Duration
	RateLimitRPS float64
	RateBurst    int
}

// ReviewClient reads and writes reviews on the external platform.
type ReviewClient interface {
	// GetReview fetches the current state of the target review.
	GetReview(ctx context.Context, target platformDomain.ReviewTarget) (*platformDomain.Review, error)

	// UpsertReply writes the owner reply for the target review and returns
	// the platform's representation of the stored reply.
	UpsertReply(ctx context.Context, target platformDomain.ReviewTarget, comment string) (*platformDomain.ReviewReply, error)
}

// reviewClient implements ReviewClient against the platform HTTP API.
// Calls share one rate limiter so a burst of publish attempts cannot exhaust
// the platform quota.
type reviewClient struct {
	config      ReviewClientConfig
	credentials CredentialCache
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// GetReview fetches the current state of the target review.
func (c *reviewClient) GetReview(
	ctx context.Context,
	target platformDomain.ReviewTarget,
) (*platformDomain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.FetchTimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, c.reviewURL(target), nil)
	if err != nil {
		return nil, err
	}

	var review platformDomain.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "failed to decode review response: %v", err)
	}

	return &review, nil
}

// UpsertReply writes the owner reply for the target review.
func (c *reviewClient) UpsertReply(
	ctx context.Context,
	target platformDomain.ReviewTarget,
	comment string,
) (*platformDomain.ReviewReply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.WriteTimeout)
	defer cancel()

	payload, err := json.Marshal(platformDomain.ReviewReply{Comment: comment})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal reply payload")
	}

	body, err := c.do(ctx, http.MethodPut, c.reviewURL(target)+"/reply", payload)
	if err != nil {
		return nil, err
	}

	var reply platformDomain.ReviewReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "failed to decode reply response: %v", err)
	}

	c.logger.Info("review reply written",
		slog.String("review_id", target.ReviewID),
		slog.Int("reply_length", len(comment)),
	)

	return &reply, nil
}

// do acquires a credential, performs one platform call, and returns the
// response body. Any transport error or non-2xx status is an upstream error.
func (c *reviewClient) do(ctx context.Context, method, requestURL string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "rate limiter wait failed: %v", err)
	}

	token, err := c.credentials.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "failed to create platform request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "platform request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstream, "failed to read platform response: %v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperrors.Wrapf(
			apperrors.ErrUpstream,
			"platform returned status %d: %s",
			resp.StatusCode,
			string(body),
		)
	}

	return body, nil
}

func (c *reviewClient) reviewURL(target platformDomain.ReviewTarget) string {
	return fmt.Sprintf(
		"%s/accounts/%s/locations/%s/reviews/%s",
		c.baseURL(),
		url.PathEscape(target.AccountID),
		url.PathEscape(target.LocationID),
		url.PathEscape(target.ReviewID),
	)
}

func (c *reviewClient) baseURL() string {
	if c.config.BaseURL != "" {
		return c.config.BaseURL
	}
	return defaultReviewsBaseURL
}

// NewReviewClient creates a new review platform client.
func NewReviewClient(
	config ReviewClientConfig,
	credentials CredentialCache,
	logger *slog.Logger,
) ReviewClient {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 20 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 25 * time.Second
	}
	if config.RateLimitRPS <= 0 {
		config.RateLimitRPS = 10
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 10
	}

	return &reviewClient{
		config:      config,
		credentials: credentials,
		httpClient:  &http.Client{},
		limiter:     rate.NewLimiter(rate.Limit(config.RateLimitRPS), config.RateBurst),
		logger:      logger,
	}
}
