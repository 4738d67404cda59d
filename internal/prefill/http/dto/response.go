// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"sort"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
)

// CreatePrefillResponse carries the opaque token minted for a stored review.
type CreatePrefillResponse struct {
	Token string `json:"token"`
}

// ResolvePrefillResponse carries the form values the editor UI needs to
// pre-populate a single-review session.
type ResolvePrefillResponse struct {
	Review         string   `json:"review"`
	Rating         string   `json:"rating"`
	StoreCode      string   `json:"storeCode"`
	LocationTitle  string   `json:"locationTitle"`
	PublishReady   bool     `json:"publishReady"`
	PublishMissing []string `json:"publishMissing"`
}

// DebugPrefillResponse exposes the full stored record for diagnostics.
// Payload values are reduced to key names plus the publish identifiers so the
// endpoint never echoes review text back out.
type DebugPrefillResponse struct {
	Token          string   `json:"token"`
	CreatedAt      int64    `json:"created_at"`
	UsedAt         *int64   `json:"used_at"`
	UsedCount      int      `json:"used_count"`
	PublishReady   bool     `json:"publish_ready"`
	PublishMissing []string `json:"publish_missing"`
	PayloadKeys    []string `json:"payload_keys"`
	AccountID      string   `json:"accountId"`
	LocationID     string   `json:"locationId"`
	ReviewID       string   `json:"reviewId"`
}

// MapPrefillToResolveResponse converts a stored prefill to the UI resolution response.
func MapPrefillToResolveResponse(prefill *prefillDomain.Prefill) ResolvePrefillResponse {
	return ResolvePrefillResponse{
		Review:         prefill.Payload.String(prefillDomain.PayloadKeyReview),
		Rating:         prefill.Payload.String(prefillDomain.PayloadKeyRating),
		StoreCode:      prefill.Payload.String(prefillDomain.PayloadKeyStoreCode),
		LocationTitle:  prefill.Payload.String(prefillDomain.PayloadKeyLocationTitle),
		PublishReady:   prefill.Payload.PublishReady(),
		PublishMissing: prefill.Payload.PublishMissing(),
	}
}

// MapPrefillToDebugResponse converts a stored prefill to the diagnostics response.
func MapPrefillToDebugResponse(prefill *prefillDomain.Prefill) DebugPrefillResponse {
	keys := make([]string, 0, len(prefill.Payload))
	for key := range prefill.Payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return DebugPrefillResponse{
		Token:          prefill.Token,
		CreatedAt:      prefill.CreatedAt,
		UsedAt:         prefill.UsedAt,
		UsedCount:      prefill.UsedCount,
		PublishReady:   prefill.Payload.PublishReady(),
		PublishMissing: prefill.Payload.PublishMissing(),
		PayloadKeys:    keys,
		AccountID:      prefill.Payload.String(prefillDomain.PayloadKeyAccountID),
		LocationID:     prefill.Payload.String(prefillDomain.PayloadKeyLocationID),
		ReviewID:       prefill.Payload.String(prefillDomain.PayloadKeyReviewID),
	}
}
