package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "siscav/internal/errors"
	"siscav/internal/model"
	"siscav/internal/repository"
	"siscav/internal/service"
)

// AccessLogHandler handles access-attempt recording and browsing. Recording is
// unauthenticated (device-originated); browsing and image retrieval require an
// access token.
type AccessLogHandler struct {
	accessService service.AccessService
}

// NewAccessLogHandler creates a new access-log handler.
func NewAccessLogHandler(accessService service.AccessService) *AccessLogHandler {
	return &AccessLogHandler{accessService: accessService}
}

// Create godoc
// @Summary Record an access attempt
// @Tags access-logs
// @Accept multipart/form-data
// @Produce json
// @Param plate formData string true "Detected plate string"
// @Param file formData file true "Capture image (jpeg, png or webp)"
// @Success 201 {object} model.AccessLog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Router /access_logs [post]
func (h *AccessLogHandler) Create(c echo.Context) error {
	rawPlate := c.FormValue("plate")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "missing image file",
			Code:  "MISSING_FILE",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "unreadable image file",
			Code:  "INVALID_FILE",
		})
	}
	defer src.Close()

	entry, err := h.accessService.RecordAttempt(c.Request().Context(), rawPlate, service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     src,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List access logs
// @Tags access-logs
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Entries to skip"
// @Param limit query int false "Page size (1-100)"
// @Param plate query string false "Case-insensitive plate substring"
// @Param status query string false "Authorized or Denied"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} PageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /access_logs [get]
func (h *AccessLogHandler) List(c echo.Context) error {
	skip, limit := parsePagination(c)

	filter := repository.AccessLogFilter{
		Plate: c.QueryParam("plate"),
	}

	if s := c.QueryParam("status"); s != "" {
		status := model.AccessStatus(s)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "status must be Authorized or Denied",
				Code:  "INVALID_STATUS",
			})
		}
		filter.Status = status
	}

	if v := c.QueryParam("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "from must be an RFC3339 timestamp",
				Code:  "INVALID_TIMESTAMP",
			})
		}
		filter.From = &from
	}
	if v := c.QueryParam("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "to must be an RFC3339 timestamp",
				Code:  "INVALID_TIMESTAMP",
			})
		}
		filter.To = &to
	}

	items, total, err := h.accessService.List(c.Request().Context(), skip, limit, filter)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PageResponse{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

// GetImage godoc
// @Summary Serve a stored capture image
// @Tags access-logs
// @Produce octet-stream
// @Security BearerAuth
// @Param filename path string true "Image storage key"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /access_logs/images/{filename} [get]
func (h *AccessLogHandler) GetImage(c echo.Context) error {
	rc, contentType, err := h.accessService.OpenImage(c.Request().Context(), c.Param("filename"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, contentType, rc)
}
