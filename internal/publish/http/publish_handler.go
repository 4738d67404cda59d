// Package http provides HTTP handlers for publishing drafted replies to the
// review platform.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/replydesk/internal/errors"
	"github.com/allisson/replydesk/internal/httputil"
	"github.com/allisson/replydesk/internal/publish/http/dto"
	publishUseCase "github.com/allisson/replydesk/internal/publish/usecase"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// PublishHandler handles HTTP requests for publishing replies.
type PublishHandler struct {
	publishUseCase publishUseCase.PublishUseCase
	enabled        bool
	logger         *slog.Logger
}

// NewPublishHandler creates a new publish handler. Publishing is feature
// flagged: a disabled handler answers as if the endpoint did not exist.
func NewPublishHandler(
	publishUseCase publishUseCase.PublishUseCase,
	enabled bool,
	logger *slog.Logger,
) *PublishHandler {
	return &PublishHandler{
		publishUseCase: publishUseCase,
		enabled:        enabled,
		logger:         logger,
	}
}

// PublishHandler publishes a drafted reply to the platform review identified
// by the token.
// POST /api/publish - Optionally gated behind basic auth at route setup.
// Returns 200 OK with the platform's reply representation; 404 when the
// feature flag is off.
func (h *PublishHandler) PublishHandler(c *gin.Context) {
	if !h.enabled {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	var req dto.PublishRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	result, err := h.publishUseCase.Publish(c.Request.Context(), req.ToPublishInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}
