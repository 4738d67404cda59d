package http

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/replydesk/internal/errors"
	"github.com/allisson/replydesk/internal/httputil"
	publishService "github.com/allisson/replydesk/internal/publish/service"
)

// BasicAuthMiddleware creates a Gin middleware that gates publishing behind
// HTTP basic auth. The configured password is an Argon2id hash, never the
// plain password.
func BasicAuthMiddleware(
	username string,
	passwordHash string,
	passwords publishService.PasswordService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, password, ok := c.Request.BasicAuth()
		if !ok {
			logger.Debug("missing basic auth credentials")
			c.Header("WWW-Authenticate", `Basic realm="publish"`)
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		if !userMatch || !passwords.Verify(password, passwordHash) {
			logger.Debug("basic auth credentials rejected")
			c.Header("WWW-Authenticate", `Basic realm="publish"`)
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
