package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedSkip  int
		expectedLimit int
	}{
		{"defaults", "", 0, 100},
		{"explicit values", "skip=10&limit=25", 10, 25},
		{"limit clamped high", "limit=500", 0, 100},
		{"limit clamped low", "limit=0", 0, 1},
		{"negative skip ignored", "skip=-3", 0, 100},
		{"garbage ignored", "skip=abc&limit=xyz", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			c := echo.New().NewContext(req, httptest.NewRecorder())

			skip, limit := parsePagination(c)
			assert.Equal(t, tt.expectedSkip, skip)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}
