// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strconv"

	validation "github.com/jellydator/validation"

	prefillDomain "github.com/allisson/replydesk/internal/prefill/domain"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// CreatePrefillRequest contains the parameters for creating a prefill token.
// Platform identifiers are accepted in camelCase with snake_case fallbacks so
// exporters using either convention can call the endpoint unchanged.
type CreatePrefillRequest struct {
	Review          string `json:"review"`
	Reviewer        string `json:"reviewer"`
	ReviewedAt      string `json:"reviewed_at"`
	Rating          int    `json:"rating"`
	AccountID       string `json:"accountId"`
	AccountIDSnake  string `json:"account_id"`
	LocationID      string `json:"locationId"`
	LocationIDSnake string `json:"location_id"`
	ReviewID        string `json:"reviewId"`
	ReviewIDSnake   string `json:"review_id"`
	StoreCode       string `json:"storeCode"`
	LocationTitle   string `json:"locationTitle"`
}

// Validate checks if the create prefill request is valid.
func (r *CreatePrefillRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Review,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 8000),
		),
		validation.Field(&r.Rating,
			customValidation.Rating{},
		),
	)
}

// ToCreateInput maps the request onto the domain input, resolving the
// camelCase/snake_case identifier fallbacks.
func (r *CreatePrefillRequest) ToCreateInput() *prefillDomain.CreatePrefillInput {
	rating := ""
	if r.Rating != 0 {
		rating = strconv.Itoa(r.Rating)
	}

	return &prefillDomain.CreatePrefillInput{
		Review:        r.Review,
		Reviewer:      r.Reviewer,
		ReviewedAt:    r.ReviewedAt,
		Rating:        rating,
		AccountID:     firstNonEmpty(r.AccountID, r.AccountIDSnake),
		LocationID:    firstNonEmpty(r.LocationID, r.LocationIDSnake),
		ReviewID:      firstNonEmpty(r.ReviewID, r.ReviewIDSnake),
		StoreCode:     r.StoreCode,
		LocationTitle: r.LocationTitle,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
