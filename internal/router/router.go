package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"siscav/internal/auth"
	apperrors "siscav/internal/errors"
	"siscav/internal/handler"
	"siscav/internal/ratelimit"
	"siscav/internal/repository"
)

// currentUserKey is the context key under which the authenticated admin is
// stored for downstream handlers.
const currentUserKey = "currentUser"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	loginLimiter *ratelimit.Limiter,
	authHandler *handler.AuthHandler,
	whitelistHandler *handler.WhitelistHandler,
	accessLogHandler *handler.AccessLogHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login/access-token", authHandler.Login, loginLimiter.Middleware())
	e.POST("/login/refresh-token", authHandler.Refresh)

	// Device-originated; capture devices carry no credentials
	e.POST("/access_logs", accessLogHandler.Create)

	// Secured routes: 401 when no credential was supplied at all, 403 when a
	// credential was supplied but does not verify, 404 when the token's
	// subject no longer exists.
	secured := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				return jwtService.Verify(tokenString, auth.TokenKindAccess)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
						Error: "missing credentials",
						Code:  "NOT_AUTHENTICATED",
					})
				}
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "invalid or expired token",
					Code:  "FORBIDDEN",
				})
			},
		}),
		loadCurrentUser(userRepo),
	)

	// Whitelist routes
	secured.POST("/whitelist", whitelistHandler.Create)
	secured.GET("/whitelist", whitelistHandler.List)
	secured.GET("/whitelist/:id", whitelistHandler.Get)
	secured.PUT("/whitelist/:id", whitelistHandler.Update)
	secured.DELETE("/whitelist/:id", whitelistHandler.Delete)

	// Access log routes
	secured.GET("/access_logs", accessLogHandler.List)
	secured.GET("/access_logs/images/:filename", accessLogHandler.GetImage)
}

// loadCurrentUser resolves the verified token subject to a stored user. A
// token whose subject was deleted since issuance answers 404.
func loadCurrentUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, ok := c.Get("user").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "invalid or expired token",
					Code:  "FORBIDDEN",
				})
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "invalid or expired token",
					Code:  "FORBIDDEN",
				})
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
					Error: apperrors.ErrUserNotFound.Error(),
					Code:  "USER_NOT_FOUND",
				})
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
