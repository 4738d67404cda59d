// Package http provides HTTP handlers for prefill token operations.
// Tokens carry a stored review payload between the exporting system and the
// reply editor without exposing platform identifiers in links.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/replydesk/internal/httputil"
	"github.com/allisson/replydesk/internal/prefill/http/dto"
	prefillUseCase "github.com/allisson/replydesk/internal/prefill/usecase"
	customValidation "github.com/allisson/replydesk/internal/validation"
)

// PrefillHandler handles HTTP requests for prefill token operations.
type PrefillHandler struct {
	prefillUseCase prefillUseCase.PrefillUseCase
	logger         *slog.Logger
}

// NewPrefillHandler creates a new prefill handler with required dependencies.
func NewPrefillHandler(prefillUseCase prefillUseCase.PrefillUseCase, logger *slog.Logger) *PrefillHandler {
	return &PrefillHandler{
		prefillUseCase: prefillUseCase,
		logger:         logger,
	}
}

// CreateHandler stores a review payload and mints an opaque token for it.
// POST /api/prefill - Requires the shared-secret header.
// Returns 201 Created with the token. Caching is disabled on the response so
// proxies never replay a minted token.
func (h *PrefillHandler) CreateHandler(c *gin.Context) {
	var req dto.CreatePrefillRequest

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
	prefill, err := h.prefillUseCase.Create(c.Request.Context(), req.ToCreateInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, dto.CreatePrefillResponse{Token: prefill.Token})
}

// ResolveHandler resolves a token into the form values the editor UI needs.
// GET /api/prefill?token=... - Resolution never marks the token used, so the
// same link can be reopened within the TTL window.
// Returns 200 OK with prefill values, 404 when the token is absent or expired.
func (h *PrefillHandler) ResolveHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("token cannot be empty"),
			h.logger,
		)
		return
	}

	prefill, err := h.prefillUseCase.Resolve(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrefillToResolveResponse(prefill))
}

// DebugHandler exposes the stored record for a token for diagnostics.
// GET /api/debug/prefill?token=... - Requires the shared-secret header.
// Returns 200 OK with record metadata and payload key names.
func (h *PrefillHandler) DebugHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("token cannot be empty"),
			h.logger,
		)
		return
	}

	prefill, err := h.prefillUseCase.Resolve(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrefillToDebugResponse(prefill))
}
