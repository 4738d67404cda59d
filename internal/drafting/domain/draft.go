// Package domain defines the core domain models for the reply drafting flow.
// A draft submission carries up to MaxEntries review entries plus shared
// settings; drafting produces one reply per non-empty entry.
package domain

import "strings"

// MaxEntries is the maximum number of review entries drafted per submission.
// Additional entries are ignored.
const MaxEntries = 10

// InsightsEventType is the webhook event type emitted when drafting
// extracts insights from generated replies.
const InsightsEventType = "insights.extracted"

// DraftEntry is a single review to draft a reply for. Entries with blank
// review text are skipped.
type DraftEntry struct {
	Review     string
	Rating     int
	ReviewType string
	Salutation string
}

// DraftSettings are the shared settings of a draft submission. Token, when
// present and resolvable, switches the submission into single-review mode.
type DraftSettings struct {
	SelectedTone       string
	CorporateSignature string
	ContactEmail       string
	LanguageMode       string
	Token              string
}

// DraftDefaults are the configured fallbacks applied to blank settings.
type DraftDefaults struct {
	SelectedTone       string
	CorporateSignature string
	LanguageMode       string
}

// ApplyDefaults fills blank settings fields from the configured defaults.
// ContactEmail has no fallback.
func (s *DraftSettings) ApplyDefaults(defaults DraftDefaults) {
	if strings.TrimSpace(s.SelectedTone) == "" {
		s.SelectedTone = defaults.SelectedTone
	}
	if strings.TrimSpace(s.CorporateSignature) == "" {
		s.CorporateSignature = defaults.CorporateSignature
	}
	if strings.TrimSpace(s.LanguageMode) == "" {
		s.LanguageMode = defaults.LanguageMode
	}
}

// DraftInput contains the parameters for drafting replies.
type DraftInput struct {
	Entries  []DraftEntry
	Settings DraftSettings
}

// DraftedReply is the drafting outcome for one review entry. Insights is
// empty when the generated text carried no internal block.
type DraftedReply struct {
	Review   string
	Reply    string
	Insights string
}

// DraftResult is the outcome of a draft submission. Token echoes the
// submission token when it resolved; PublishReady is true only when exactly
// one reply was drafted and the token payload carries the platform
// identifiers.
type DraftResult struct {
	Replies      []DraftedReply
	Token        string
	PublishReady bool
}

// InsightItem pairs a review with the insights extracted from its draft.
type InsightItem struct {
	Review   string `json:"review"`
	Insights string `json:"insights"`
}

// InsightsEvent is the notification payload sent when a draft submission
// extracted insights.
type InsightsEvent struct {
	Token string        `json:"token,omitempty"`
	Items []InsightItem `json:"items"`
}
