package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/complaintdesk/complaints-api/internal/api/middleware"
	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

// currentUser returns the user injected by middleware.Auth. Its absence means
// the route was registered without the middleware, which is treated as an
// unauthenticated request.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrTokenMissing
	}
	return u, nil
}
