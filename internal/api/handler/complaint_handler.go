package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/complaintdesk/complaints-api/internal/api/metrics"
	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
)

// IdempotencyKeyHeader lets a client retry POST /complaints safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// ComplaintHandler handles HTTP requests for complaint operations.
type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// Create handles POST /complaints.
//
// @Summary      Create a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     AccessToken
// @Param        Idempotency-Key  header    string                  false  "Replays return the original id"
// @Param        body             body      createComplaintRequest  true   "Complaint"
// @Success      201              {object}  createComplaintResponse
// @Failure      400              {object}  messageResponse
// @Failure      401              {object}  messageResponse
// @Router       /complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createComplaintRequest
	if err := c.Bind(&req); err != nil {
		metrics.ObserveComplaint(metrics.OpCreate, domain.ErrInvalidInput)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ObserveComplaint(metrics.OpCreate, domain.ErrInvalidInput)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateComplaintInput{
		OwnerID:        user.ID,
		Title:          *req.Title,
		Description:    *req.Description,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader)),
	})
	metrics.ObserveComplaint(metrics.OpCreate, err)
	if err != nil {
		return err
	}
	if res.Replayed {
		metrics.IdempotentReplaysTotal.Inc()
	}

	return c.JSON(http.StatusCreated, createComplaintResponse{
		Message: "complaint created successfully",
		ID:      res.ID,
	})
}

// List handles GET /complaints.
//
// @Summary      List the caller's complaints
// @Tags         complaints
// @Produce      json
// @Security     AccessToken
// @Success      200  {array}   complaintResponse
// @Failure      401  {object}  messageResponse
// @Router       /complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), user.ID)
	metrics.ObserveComplaint(metrics.OpList, err)
	if err != nil {
		return err
	}

	out := make([]complaintResponse, 0, len(items))
	for _, it := range items {
		out = append(out, complaintResponse{ID: it.ID, Title: it.Title, Description: it.Description})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /complaints/:id.
//
// @Summary      Partially update a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     AccessToken
// @Param        id    path      int                     true  "Complaint id"
// @Param        body  body      updateComplaintRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /complaints/{id} [put]
func (h *ComplaintHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := complaintID(c)
	if err != nil {
		metrics.ObserveComplaint(metrics.OpUpdate, err)
		return err
	}

	input := ports.UpdateComplaintInput{ID: id, CallerID: user.ID}
	var req updateComplaintRequest
	if err := c.Bind(&req); err != nil {
		input.MalformedBody = true
	} else {
		input.Title = req.Title
		input.Description = req.Description
	}

	err = h.service.Update(c.Request().Context(), input)
	metrics.ObserveComplaint(metrics.OpUpdate, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "complaint updated successfully"})
}

// Delete handles DELETE /complaints/:id.
//
// @Summary      Delete a complaint
// @Tags         complaints
// @Produce      json
// @Security     AccessToken
// @Param        id   path      int  true  "Complaint id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := complaintID(c)
	if err != nil {
		metrics.ObserveComplaint(metrics.OpDelete, err)
		return err
	}

	err = h.service.Delete(c.Request().Context(), id, user.ID)
	metrics.ObserveComplaint(metrics.OpDelete, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "complaint deleted successfully"})
}

// complaintID parses the :id path parameter. Only unsigned decimal integers
// name a complaint; anything else is reported as not found.
func complaintID(c echo.Context) (int64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0, domain.ErrComplaintNotFound
	}
	return int64(id), nil
}
