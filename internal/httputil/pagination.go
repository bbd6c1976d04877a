package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// Transaction listings are capped so one page never scans the whole ledger.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

var (
	errInvalidOffset = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid offset parameter: must be a non-negative integer")
	errInvalidLimit  = apperrors.Wrapf(
		apperrors.ErrInvalidInput,
		"invalid limit parameter: must be between 1 and %d",
		MaxLimit,
	)
)

// ValidatePagination checks an offset/limit window. The CLI listing uses it too.
func ValidatePagination(offset, limit int) error {
	if offset < 0 {
		return errInvalidOffset
	}
	if limit < 1 || limit > MaxLimit {
		return errInvalidLimit
	}
	return nil
}

// ParsePagination reads offset (default 0) and limit (default DefaultLimit) from the query.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, errInvalidOffset
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil {
		return 0, 0, errInvalidLimit
	}

	if err := ValidatePagination(offset, limit); err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}

// PageMeta describes the window returned by a paginated list endpoint.
type PageMeta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Count  int `json:"count"`
}

// NewPageMeta builds the pagination metadata for a list response holding count items.
func NewPageMeta(offset, limit, count int) PageMeta {
	return PageMeta{Offset: offset, Limit: limit, Count: count}
}
