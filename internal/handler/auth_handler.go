package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"siscav/internal/auth"
	apperrors "siscav/internal/errors"
	"siscav/internal/service"
)

// AuthHandler handles login and token-refresh endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the form-encoded login request. The credential field
// is named username for OAuth2 password-flow compatibility but carries the
// admin's email.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `form:"refresh_token" validate:"required"`
}

// Login godoc
// @Summary Obtain an access + refresh token pair
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Admin email"
// @Param password formData string true "Password"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /login/access-token [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
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

	pair, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// bad credentials answer 400, not 401: the client supplied a
		// well-formed request with wrong content
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary Exchange a refresh token for a fresh token pair
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param refresh_token formData string true "Refresh token"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /login/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
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

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenKindMismatch):
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "invalid refresh token",
				Code:  "INVALID_REFRESH_TOKEN",
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
				Error: apperrors.ErrUserNotFound.Error(),
				Code:  "USER_NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to refresh token",
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, pair)
}
