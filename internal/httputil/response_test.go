package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
		exposesMsg   bool
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "transaction not found"), http.StatusNotFound, "not_found", true},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "payment already processed"), http.StatusConflict, "conflict", true},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "items: cannot be blank"), http.StatusUnprocessableEntity, "invalid_input", true},
		{"unavailable", apperrors.Wrap(apperrors.ErrServiceUnavailable, "Order service unavailable"), http.StatusServiceUnavailable, "service_unavailable", true},
		{"bad gateway", apperrors.Wrap(apperrors.ErrBadGateway, "Payment service rejected request"), http.StatusBadGateway, "bad_gateway", true},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "internal_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/v1/payments/confirm", nil)

			var logs bytes.Buffer
			HandleErrorGin(c, tt.err, slog.New(slog.NewJSONHandler(&logs, nil)))

			assert.Equal(t, tt.expectedCode, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedErr, response.Error)
			if tt.exposesMsg {
				assert.Equal(t, tt.err.Error(), response.Message)
			} else {
				assert.NotContains(t, response.Message, "db exploded")
			}

			if tt.expectedCode >= http.StatusInternalServerError {
				assert.Contains(t, logs.String(), `"level":"ERROR"`)
			} else {
				assert.Contains(t, logs.String(), `"level":"WARN"`)
			}
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("items: cannot be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"items: cannot be blank"}`, w.Body.String())
}
