package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/helpers"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type AdminController struct {
	Logger       *slog.Logger
	Service      domain.AdminService
	EventService domain.EventService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService, eventSvc domain.EventService) *AdminController {
	return &AdminController{
		Logger:       logger,
		Service:      svc,
		EventService: eventSvc,
	}
}

// GetEventsByType godoc
// @Summary Classify all events by time (admin view, no approval filter)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string true "past, upcoming, trending or all"
// @Success 200 {object} domain.Result
// @Failure 400 {object} domain.Result "invalid event type"
// @Failure 422 {object} domain.Result "no data found"
// @Router /admin/events [get]
func (c *AdminController) GetEventsByType(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetEventsByType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// UpdateStatusRequest is the request body for POST /admin/update-status.
type UpdateStatusRequest struct {
	ID     int64 `json:"id"`
	Status *bool `json:"status"`
}

// Validate implements helpers.Validator.
func (req UpdateStatusRequest) Validate() []string {
	var errs []string
	if req.ID <= 0 {
		errs = append(errs, "id is required")
	}
	if req.Status == nil {
		errs = append(errs, "status is required")
	}
	return errs
}

// UpdateStatusEvent godoc
// @Summary Toggle an event's active status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateStatusRequest true "Event id and status flag"
// @Success 200 {object} domain.Result "data contains the updated event"
// @Failure 404 {object} domain.Result
// @Router /admin/update-status [post]
func (c *AdminController) UpdateStatusEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.UpdateStatusEvent(r.Context(), req.ID, *req.Status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// UpdateApprovalRequest is the request body for PATCH /admin/{id}/approval.
type UpdateApprovalRequest struct {
	Approval domain.ApprovalStatus `json:"approval"`
}

// Validate implements helpers.Validator.
func (req UpdateApprovalRequest) Validate() []string {
	if !req.Approval.Valid() {
		return []string{"approval must be one of pending, approved, rejected"}
	}
	return nil
}

// UpdateApproval godoc
// @Summary Change an event's approval state
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body UpdateApprovalRequest true "New approval state"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /admin/{id}/approval [patch]
func (c *AdminController) UpdateApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	var req UpdateApprovalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.EventService.UpdateEvent(r.Context(), id,
		domain.UpdateEventInput{Approval: &req.Approval}, true)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// monthsParam parses the months query parameter, defaulting to 0 which lets
// the service pick its own default window.
func monthsParam(r *http.Request) int {
	if s := r.URL.Query().Get("months"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

// GetUserCreationStats godoc
// @Summary Monthly signup counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param months query int false "Trailing window in months (default 6)"
// @Success 200 {object} domain.Result "buckets in chronological order"
// @Router /admin/stats/users [get]
func (c *AdminController) GetUserCreationStats(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetUserCreationStats(r.Context(), monthsParam(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventTypeDistribution godoc
// @Summary Event-type distribution over a trailing window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param months query int false "Trailing window in months (default 6)"
// @Success 200 {object} domain.Result "counts and percentages per event type"
// @Router /admin/stats/event-types [get]
func (c *AdminController) GetEventTypeDistribution(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetEventTypeDistribution(r.Context(), monthsParam(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}
