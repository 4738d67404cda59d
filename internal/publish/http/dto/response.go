// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
)

// PublishResponse carries the platform's representation of the stored reply.
type PublishResponse struct {
	Comment    string `json:"comment"`
	UpdateTime string `json:"updateTime,omitempty"`
	DryRun     bool   `json:"dryRun,omitempty"`
}

// MapResultToResponse converts a publish result to the API response.
func MapResultToResponse(result *publishDomain.PublishResult) PublishResponse {
	return PublishResponse{
		Comment:    result.Comment,
		UpdateTime: result.UpdateTime,
		DryRun:     result.DryRun,
	}
}
