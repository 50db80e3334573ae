package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// PageResponse is the envelope for every paginated listing.
type PageResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

// parsePagination reads skip/limit query params, clamping skip to >= 0 and
// limit to [1, 100]. Unparseable values fall back to the defaults.
func parsePagination(c echo.Context) (skip, limit int) {
	skip = 0
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v > 0 {
		skip = v
	}

	limit = defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = v
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
