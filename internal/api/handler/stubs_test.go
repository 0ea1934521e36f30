package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/complaintdesk/complaints-api/internal/api/middleware"
	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, name, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, name, password string) (string, error) {
	return s.loginFn(ctx, name, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

type stubComplaintService struct {
	createFn func(ctx context.Context, in ports.CreateComplaintInput) (*ports.CreateComplaintResult, error)
	listFn   func(ctx context.Context, ownerID int64) ([]ports.ComplaintSummary, error)
	updateFn func(ctx context.Context, in ports.UpdateComplaintInput) error
	deleteFn func(ctx context.Context, id, callerID int64) error
}

func (s *stubComplaintService) Create(ctx context.Context, in ports.CreateComplaintInput) (*ports.CreateComplaintResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubComplaintService) List(ctx context.Context, ownerID int64) ([]ports.ComplaintSummary, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubComplaintService) Update(ctx context.Context, in ports.UpdateComplaintInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubComplaintService) Delete(ctx context.Context, id, callerID int64) error {
	return s.deleteFn(ctx, id, callerID)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a context for method/target with an optional JSON body and
// an optional authenticated user.
func newContext(e *echo.Echo, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return c, rec
}
