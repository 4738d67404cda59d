// Package domain defines the core entities exchanged with the external review platform.
package domain

import "strings"

// ReviewTarget identifies a single review on the platform.
// All three identifiers are required to address a review.
type ReviewTarget struct {
	AccountID  string
	LocationID string
	ReviewID   string
}

// ReviewReply is the platform's representation of an owner reply to a review.
type ReviewReply struct {
	// Comment is the reply text as stored by the platform.
	Comment string `json:"comment"`

	// UpdateTime is the platform timestamp of the last reply write (RFC 3339).
	UpdateTime string `json:"updateTime,omitempty"`
}

// Review is the platform's representation of a customer review.
type Review struct {
	// Name is the platform resource name of the review.
	Name string `json:"name,omitempty"`

	// ReviewID is the platform identifier of the review.
	ReviewID string `json:"reviewId,omitempty"`

	// Comment is the customer's review text.
	Comment string `json:"comment,omitempty"`

	// StarRating is the platform's enum rating value (e.g. "FIVE").
	StarRating string `json:"starRating,omitempty"`

	// CreateTime is the platform timestamp of review creation (RFC 3339).
	CreateTime string `json:"createTime,omitempty"`

	// UpdateTime is the platform timestamp of the last review update (RFC 3339).
	UpdateTime string `json:"updateTime,omitempty"`

	// ReviewReply is the existing owner reply, nil when the review is unanswered.
	ReviewReply *ReviewReply `json:"reviewReply,omitempty"`
}

// HasReply reports whether the review already carries a non-empty owner reply.
func (r *Review) HasReply() bool {
	return r.ReviewReply != nil && strings.TrimSpace(r.ReviewReply.Comment) != ""
}
