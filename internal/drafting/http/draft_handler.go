// Package http provides the HTTP handler for draft submissions.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/replydesk/internal/drafting/http/dto"
	draftingUseCase "github.com/allisson/replydesk/internal/drafting/usecase"
	"github.com/allisson/replydesk/internal/httputil"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// DraftHandler handles HTTP requests for draft submissions.
type DraftHandler struct {
	draftUseCase draftingUseCase.DraftUseCase
	logger       *slog.Logger
}

// NewDraftHandler creates a new draft handler with required dependencies.
func NewDraftHandler(draftUseCase draftingUseCase.DraftUseCase, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{
		draftUseCase: draftUseCase,
		logger:       logger,
	}
}

// DraftHandler drafts replies for up to ten review entries.
// POST /api/draft - Entries may be replaced by a token carrying the stored
// review. Per-entry generation failures surface as error text inside the
// affected slot, not as a failed request.
// Returns 200 OK with one reply per drafted entry.
func (h *DraftHandler) DraftHandler(c *gin.Context) {
	var req dto.DraftRequest

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
	result, err := h.draftUseCase.Draft(c.Request.Context(), req.ToDraftInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}
