package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "siscav/internal/errors"
	"siscav/internal/service"
)

// WhitelistHandler handles authorized-plate CRUD endpoints. Every route is
// behind the access-token middleware.
type WhitelistHandler struct {
	whitelistService service.WhitelistService
}

// NewWhitelistHandler creates a new whitelist handler.
func NewWhitelistHandler(whitelistService service.WhitelistService) *WhitelistHandler {
	return &WhitelistHandler{whitelistService: whitelistService}
}

// PlateRequest represents a whitelist create or update request.
type PlateRequest struct {
	Plate       string `json:"plate" validate:"required"`
	Description string `json:"description"`
}

// Create godoc
// @Summary Add a plate to the whitelist
// @Tags whitelist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlateRequest true "Plate data"
// @Success 201 {object} model.AuthorizedPlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /whitelist [post]
func (h *WhitelistHandler) Create(c echo.Context) error {
	var req PlateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	entry, err := h.whitelistService.Create(c.Request().Context(), req.Plate, req.Description)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List whitelist entries
// @Tags whitelist
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Entries to skip"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /whitelist [get]
func (h *WhitelistHandler) List(c echo.Context) error {
	skip, limit := parsePagination(c)

	items, total, err := h.whitelistService.List(c.Request().Context(), skip, limit)
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

// Get godoc
// @Summary Fetch one whitelist entry
// @Tags whitelist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} model.AuthorizedPlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /whitelist/{id} [get]
func (h *WhitelistHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	entry, err := h.whitelistService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entry)
}

// Update godoc
// @Summary Update a whitelist entry
// @Tags whitelist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body PlateRequest true "Plate data"
// @Success 200 {object} model.AuthorizedPlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /whitelist/{id} [put]
func (h *WhitelistHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	var req PlateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	entry, err := h.whitelistService.Update(c.Request().Context(), id, req.Plate, req.Description)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Remove a whitelist entry
// @Tags whitelist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} model.AuthorizedPlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /whitelist/{id} [delete]
func (h *WhitelistHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	snapshot, err := h.whitelistService.Delete(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// the deleted entry is returned as the response body
	return c.JSON(http.StatusOK, snapshot)
}
