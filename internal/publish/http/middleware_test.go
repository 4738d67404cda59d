package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	publishService "github.com/allisson/replydesk/internal/publish/service"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupBasicAuthRouter creates a test router gated behind the given credentials.
func setupBasicAuthRouter(t *testing.T, username, password string) *gin.Engine {
	t.Helper()

	passwords := publishService.NewPasswordService()
	passwordHash, err := passwords.Hash(password)
	require.NoError(t, err)

	router := gin.New()
	router.Use(BasicAuthMiddleware(username, passwordHash, passwords, createTestLogger()))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func TestBasicAuthMiddleware_Success(t *testing.T) {
	router := setupBasicAuthRouter(t, "publisher", "secret-pass")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.SetBasicAuth("publisher", "secret-pass")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuthMiddleware_MissingCredentials(t *testing.T) {
	router := setupBasicAuthRouter(t, "publisher", "secret-pass")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="publish"`, w.Header().Get("WWW-Authenticate"))

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "unauthorized", response["error"])
}

func TestBasicAuthMiddleware_WrongPassword(t *testing.T) {
	router := setupBasicAuthRouter(t, "publisher", "secret-pass")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.SetBasicAuth("publisher", "wrong-pass")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBasicAuthMiddleware_WrongUsername(t *testing.T) {
	router := setupBasicAuthRouter(t, "publisher", "secret-pass")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.SetBasicAuth("intruder", "secret-pass")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
