// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// maxReviewLength caps a single review's text in characters.
const maxReviewLength = 8000

// DraftEntryRequest is one review slot of a draft submission. Slots with
// blank review text are allowed and skipped during drafting.
type DraftEntryRequest struct {
	Review     string `json:"review"`
	Rating     int    `json:"rating"`
	ReviewType string `json:"reviewType"`
	Salutation string `json:"salutation"`
}

// Validate checks if a single review slot is valid.
func (r DraftEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Review,
			validation.RuneLength(0, maxReviewLength),
		),
		validation.Field(&r.Rating,
			customValidation.Rating{},
		),
		validation.Field(&r.ReviewType,
			validation.RuneLength(0, 64),
		),
		validation.Field(&r.Salutation,
			validation.RuneLength(0, 128),
		),
	)
}

// DraftRequest contains the parameters for drafting replies. Entries may be
// omitted when a token carries the review context.
type DraftRequest struct {
	Entries            []DraftEntryRequest `json:"entries"`
	SelectedTone       string              `json:"selectedTone"`
	CorporateSignature string              `json:"corporateSignature"`
	ContactEmail       string              `json:"contactEmail"`
	LanguageMode       string              `json:"languageMode"`
	Token              string              `json:"token"`
}

// Validate checks if the draft request is valid.
func (r *DraftRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Entries,
			validation.Required.When(r.Token == ""),
			validation.Length(0, draftingDomain.MaxEntries),
			validation.Each(),
		),
		validation.Field(&r.SelectedTone,
			validation.RuneLength(0, 64),
		),
		validation.Field(&r.CorporateSignature,
			validation.RuneLength(0, 256),
		),
		validation.Field(&r.ContactEmail,
			validation.RuneLength(0, 254),
		),
		validation.Field(&r.LanguageMode,
			validation.RuneLength(0, 16),
		),
		validation.Field(&r.Token,
			customValidation.NoWhitespace,
			validation.RuneLength(0, 128),
		),
	)
}

// ToDraftInput maps the request onto the domain input.
func (r *DraftRequest) ToDraftInput() *draftingDomain.DraftInput {
	entries := make([]draftingDomain.DraftEntry, 0, len(r.Entries))
	for _, entry := range r.Entries {
		entries = append(entries, draftingDomain.DraftEntry{
			Review:     entry.Review,
			Rating:     entry.Rating,
			ReviewType: entry.ReviewType,
			Salutation: entry.Salutation,
		})
	}

	return &draftingDomain.DraftInput{
		Entries: entries,
		Settings: draftingDomain.DraftSettings{
			SelectedTone:       r.SelectedTone,
			CorporateSignature: r.CorporateSignature,
			ContactEmail:       r.ContactEmail,
			LanguageMode:       r.LanguageMode,
			Token:              r.Token,
		},
	}
}
