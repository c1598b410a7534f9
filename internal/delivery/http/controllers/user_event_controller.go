package controllers

import (
	"log/slog"
	"net/http"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/helpers"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type UserEventController struct {
	Logger  *slog.Logger
	Service domain.UserEventService
}

func NewUserEventController(logger *slog.Logger, svc domain.UserEventService) *UserEventController {
	return &UserEventController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterUserEventRequest is the request body for POST /user-event/register.
type RegisterUserEventRequest struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// Validate implements helpers.Validator.
func (req RegisterUserEventRequest) Validate() []string {
	var errs []string
	if req.UserID <= 0 {
		errs = append(errs, "user_id is required")
	}
	if req.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// RegisterUserToEvent godoc
// @Summary Register a user to an event
// @Description Idempotent: registering twice reports the existing registration.
// @Tags user-event
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterUserEventRequest true "User and event ids"
// @Success 200 {object} domain.Result
// @Failure 422 {object} domain.Result "user or event not found"
// @Router /user-event/register [post]
func (c *UserEventController) RegisterUserToEvent(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.RegisterUserToEvent(r.Context(), req.UserID, req.EventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventUsers godoc
// @Summary List users registered for an event
// @Tags user-event
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} domain.Result
// @Failure 422 {object} domain.Result "no users found for event"
// @Router /user-event/{eventId}/users [get]
func (c *UserEventController) GetEventUsers(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(r.PathValue("eventId"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	result, err := c.Service.GetEventUsers(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetUserRegisteredEvents godoc
// @Summary List a user's registered events by status
// @Tags user-event
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param status query string false "ongoing, past, upcoming or all (default all)"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result "user not found or no events available"
// @Router /user-event/user/{userId} [get]
func (c *UserEventController) GetUserRegisteredEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.PathValue("userId"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	result, err := c.Service.GetUserRegisteredEvents(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}
