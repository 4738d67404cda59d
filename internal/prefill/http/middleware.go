package http

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/replydesk/internal/errors"
	"github.com/allisson/replydesk/internal/httputil"
)

// SecretHeader is the shared-secret header gating prefill creation and diagnostics.
const SecretHeader = "X-Prefill-Secret"

// SecretAuthMiddleware creates a Gin middleware that rejects requests whose
// shared-secret header does not match the configured value. An empty
// configured secret rejects everything since no caller can authenticate.
func SecretAuthMiddleware(secret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(SecretHeader)
		if provided == "" {
			logger.Debug("missing prefill secret header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			logger.Debug("prefill secret mismatch")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
