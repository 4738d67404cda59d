// Package domain defines the core domain models for prefill handoff records.
// A prefill record carries review context between an external caller and the
// reply-drafting flow under a short-lived opaque token.
package domain

import (
	"fmt"
	"strings"
)

// Payload keys written by the token creation endpoint.
const (
	PayloadKeyReview        = "review"
	PayloadKeyReviewer      = "reviewer"
	PayloadKeyReviewedAt    = "reviewed_at"
	PayloadKeyRating        = "rating"
	PayloadKeyAccountID     = "accountId"
	PayloadKeyLocationID    = "locationId"
	PayloadKeyReviewID      = "reviewId"
	PayloadKeyStoreCode     = "storeCode"
	PayloadKeyLocationTitle = "locationTitle"
)

// publishIdentifierKeys are the payload keys required to address a review
// on the external platform. Order is preserved in missing-key reports.
var publishIdentifierKeys = []string{
	PayloadKeyAccountID,
	PayloadKeyLocationID,
	PayloadKeyReviewID,
}

// Payload is the structured document stored under a token.
type Payload map[string]any

// String returns the trimmed string form of the value under key. Absent
// and nil values yield the empty string, non-string values are formatted.
func (p Payload) String(key string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

// PublishMissing returns the platform identifier keys that are absent or
// blank in the payload.
func (p Payload) PublishMissing() []string {
	missing := []string{}
	for _, key := range publishIdentifierKeys {
		if p.String(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// PublishReady reports whether the payload carries every platform
// identifier needed for publishing.
func (p Payload) PublishReady() bool {
	return len(p.PublishMissing()) == 0
}

// CreatePrefillInput contains the parameters for creating a handoff record.
// Reviewer and ReviewedAt feed the attribution step; the platform
// identifiers are optional and determine publish readiness.
type CreatePrefillInput struct {
	Review        string
	Reviewer      string
	ReviewedAt    string
	Rating        string
	AccountID     string
	LocationID    string
	ReviewID      string
	StoreCode     string
	LocationTitle string
}

// Prefill represents a short-lived handoff record. Records are immutable
// once created except for the usage bookkeeping fields.
type Prefill struct {
	// Token is the opaque random identifier and primary key.
	Token string
	// Payload is the review context snapshot stored under the token.
	Payload Payload
	// CreatedAt is the creation time in epoch seconds. Records older than
	// the configured TTL are expired and eligible for deletion.
	CreatedAt int64
	// UsedAt is the epoch-second timestamp of the most recent consumption
	// (nil until first use).
	UsedAt *int64
	// UsedCount is incremented on each consumption and never decremented.
	UsedCount int
}
