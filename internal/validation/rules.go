// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Rating validates the optional 1-5 review rating. Zero means "not rated"
// and passes; anything else outside the range fails.
type Rating struct{}

// Validate checks that an int rating is either zero or within 1..5.
func (r Rating) Validate(value interface{}) error {
	n, ok := value.(int)
	if !ok {
		return validation.NewError("validation_rating_type", "rating must be an integer")
	}
	if n == 0 {
		return nil
	}
	if n < 1 || n > 5 {
		return validation.NewError("validation_rating_range", "rating must be between 1 and 5")
	}
	return nil
}
