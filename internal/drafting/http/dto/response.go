package dto

import (
	draftingDomain "github.com/allisson/replydesk/internal/drafting/domain"
)

// DraftReplyResponse is the drafting outcome for one review entry.
type DraftReplyResponse struct {
	Review   string `json:"review"`
	Reply    string `json:"reply"`
	Insights string `json:"insights,omitempty"`
}

// DraftResponse is the response body of a draft submission. Token is echoed
// only when the submission token resolved.
type DraftResponse struct {
	Replies      []DraftReplyResponse `json:"replies"`
	Token        string               `json:"token,omitempty"`
	PublishReady bool                 `json:"publishReady"`
}

// MapResultToResponse converts a domain draft result to a response.
func MapResultToResponse(result *draftingDomain.DraftResult) *DraftResponse {
	replies := make([]DraftReplyResponse, 0, len(result.Replies))
	for _, reply := range result.Replies {
		replies = append(replies, DraftReplyResponse{
			Review:   reply.Review,
			Reply:    reply.Reply,
			Insights: reply.Insights,
		})
	}

	return &DraftResponse{
		Replies:      replies,
		Token:        result.Token,
		PublishReady: result.PublishReady,
	}
}
