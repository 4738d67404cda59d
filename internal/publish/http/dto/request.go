// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// PublishRequest contains the parameters for publishing a drafted reply.
type PublishRequest struct {
	Token     string `json:"token"`
	ReplyText string `json:"replyText"`
	Force     bool   `json:"force"`
}

// Validate checks if the publish request is valid.
func (r *PublishRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ReplyText,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, publishDomain.MaxReplyLength),
		),
	)
}

// ToPublishInput maps the request onto the domain input.
func (r *PublishRequest) ToPublishInput() *publishDomain.PublishInput {
	return &publishDomain.PublishInput{
		Token:     r.Token,
		ReplyText: r.ReplyText,
		Force:     r.Force,
	}
}
