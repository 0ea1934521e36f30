package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
)

const (
	// TokenHeader carries the raw token; there is no "Bearer" prefix.
	TokenHeader = "x-access-token"
	// UserKey is the echo context key holding the authenticated *domain.User.
	UserKey = "user"
)

// Auth verifies the x-access-token header and injects the resolved user into
// the context. Failures are returned as domain errors so the central error
// handler renders them.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by Auth, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserKey).(*domain.User)
	return u, ok && u != nil
}
