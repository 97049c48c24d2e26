package middleware

import (
	"strings"

	deliverycontext "guardianmed/internal/delivery/context"
	"guardianmed/internal/delivery/http/response"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and stores the caller's identity in the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return unauthorized(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return unauthorized(c, "Invalid subject in token")
		}

		ctx := deliverycontext.WithIdentity(c.Request().Context(), deliverycontext.Identity{
			AccountID: accountID,
			Username:  claims.Username,
			Roles:     claims.Roles,
		})
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func unauthorized(c echo.Context, message string) error {
	return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), message)
}
