package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/replydesk/internal/errors"
	publishDomain "github.com/allisson/replydesk/internal/publish/domain"
	"github.com/allisson/replydesk/internal/publish/http/dto"
	"github.com/allisson/replydesk/internal/publish/http/mocks"
)

// setupTestHandler creates an enabled test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*PublishHandler, *mocks.MockPublishUseCase) {
	t.Helper()

	mockUseCase := &mocks.MockPublishUseCase{}
	handler := NewPublishHandler(mockUseCase, true, createTestLogger())

	return handler, mockUseCase
}

func TestPublishHandler_PublishHandler(t *testing.T) {
	t.Run("Success_PublishesReply", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{
			Token:     "tok-1",
			ReplyText: "Vielen Dank für Ihr Feedback!",
		}

		expectedInput := &publishDomain.PublishInput{
			Token:     "tok-1",
			ReplyText: "Vielen Dank für Ihr Feedback!",
		}

		mockUseCase.On("Publish", mock.Anything, expectedInput).
			Return(&publishDomain.PublishResult{
				Comment:    "Vielen Dank für Ihr Feedback!",
				UpdateTime: "2024-01-02T10:00:00Z",
			}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PublishResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Vielen Dank für Ihr Feedback!", response.Comment)
		assert.Equal(t, "2024-01-02T10:00:00Z", response.UpdateTime)
		assert.False(t, response.DryRun)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_ForceFlag", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{
			Token:     "tok-1",
			ReplyText: "Vielen Dank!",
			Force:     true,
		}

		expectedInput := &publishDomain.PublishInput{
			Token:     "tok-1",
			ReplyText: "Vielen Dank!",
			Force:     true,
		}

		mockUseCase.On("Publish", mock.Anything, expectedInput).
			Return(&publishDomain.PublishResult{Comment: "Vielen Dank!"}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_DryRun", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{Token: "tok-1", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", mock.Anything, mock.Anything).
			Return(&publishDomain.PublishResult{Comment: "Vielen Dank!", DryRun: true}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PublishResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response.DryRun)
	})

	t.Run("Error_FeatureDisabled", func(t *testing.T) {
		mockUseCase := &mocks.MockPublishUseCase{}
		handler := NewPublishHandler(mockUseCase, false, createTestLogger())

		request := dto.PublishRequest{Token: "tok-1", ReplyText: "Vielen Dank!"}

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "not_found", response["error"])
		mockUseCase.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/publish", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "validation_error", response["error"])
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.PublishRequest{ReplyText: "Vielen Dank!"}

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingReplyText", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.PublishRequest{Token: "tok-1"}

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ReplyTooLong", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.PublishRequest{
			Token:     "tok-1",
			ReplyText: strings.Repeat("a", publishDomain.MaxReplyLength+1),
		}

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_TokenNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{Token: "expired", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrNotFound).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "not_found", response["error"])
	})

	t.Run("Error_AlreadyReplied", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{Token: "tok-1", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrConflict, "review already has a reply")).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "conflict", response["error"])
		assert.Contains(t, response["detail"], "already has a reply")
	})

	t.Run("Error_UpstreamFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{Token: "tok-1", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrUpstream, "platform returned status 503")).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "upstream_error", response["error"])
	})

	t.Run("Error_UpstreamAuthFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.PublishRequest{Token: "tok-1", ReplyText: "Vielen Dank!"}

		mockUseCase.On("Publish", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrUpstreamAuth, "token refresh returned status 401")).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/publish", request)

		handler.PublishHandler(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "upstream_auth_error", response["error"])
	})
}
