package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/stockpay/internal/errors"
	"github.com/allisson/stockpay/internal/httputil"
)

func contextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/transactions"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Window", func(t *testing.T) {
		tests := []struct {
			query         string
			offset, limit int
		}{
			{"", 0, httputil.DefaultLimit},
			{"?offset=10&limit=20", 10, 20},
			{"?offset=250", 250, httputil.DefaultLimit},
			{"?limit=100", 0, httputil.MaxLimit},
			{"?limit=1&status=SUCCESS", 0, 1},
		}
		for _, tt := range tests {
			t.Run(tt.query, func(t *testing.T) {
				offset, limit, err := httputil.ParsePagination(contextWithQuery(t, tt.query))

				require.NoError(t, err)
				assert.Equal(t, tt.offset, offset)
				assert.Equal(t, tt.limit, limit)
			})
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		tests := []struct {
			query   string
			message string
		}{
			{"?offset=-1", "invalid offset parameter"},
			{"?offset=first", "invalid offset parameter"},
			{"?limit=0", "invalid limit parameter: must be between 1 and 100"},
			{"?limit=101", "invalid limit parameter: must be between 1 and 100"},
			{"?limit=all", "invalid limit parameter"},
		}
		for _, tt := range tests {
			t.Run(tt.query, func(t *testing.T) {
				offset, limit, err := httputil.ParsePagination(contextWithQuery(t, tt.query))

				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				assert.ErrorContains(t, err, tt.message)
				assert.Zero(t, offset)
				assert.Zero(t, limit)
			})
		}
	})
}

func TestValidatePagination(t *testing.T) {
	assert.NoError(t, httputil.ValidatePagination(0, 1))
	assert.NoError(t, httputil.ValidatePagination(500, httputil.MaxLimit))
	assert.ErrorIs(t, httputil.ValidatePagination(-1, 10), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, httputil.ValidatePagination(0, 0), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, httputil.ValidatePagination(0, httputil.MaxLimit+1), apperrors.ErrInvalidInput)
}

func TestNewPageMeta(t *testing.T) {
	assert.Equal(t, httputil.PageMeta{Offset: 20, Limit: 10, Count: 3}, httputil.NewPageMeta(20, 10, 3))
}
