package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/helpers"
	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/middleware"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// parseID parses a path value as a positive integer id.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event owned by user_id. Dates are ISO timestamps; both must be today or later and the end must not precede the start. Contact info is copied from the owning user.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.CreateEventInput true "Event data"
// @Success 200 {object} domain.Result "data contains the created event"
// @Failure 400 {object} domain.Result "schema validation failed"
// @Failure 422 {object} domain.Result "unknown owner, bad dates or duplicate"
// @Router /events/create_event [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateEventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// SearchEvents godoc
// @Summary Search events
// @Description Conjunctive filters: exact location, case-insensitive name substring, inclusive start-date window. Non-admin callers only see approved events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param location query string false "Exact location"
// @Param name query string false "Name substring"
// @Param startDate query string false "Window start (ISO)"
// @Param endDate query string false "Window end (ISO)"
// @Success 200 {object} domain.Result
// @Failure 422 {object} domain.Result "no data found"
// @Router /events/search [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := c.Service.SearchEvents(r.Context(),
		q.Get("location"), q.Get("name"), q.Get("startDate"), q.Get("endDate"),
		middleware.IsAdmin(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// FindEvents godoc
// @Summary Find current and upcoming events
// @Description Keyword matches name, location or event type. Type narrows to 'trending' or 'upcoming'; anything else is rejected.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Keyword"
// @Param type query string false "trending or upcoming"
// @Success 200 {object} domain.Result
// @Failure 400 {object} domain.Result "invalid type"
// @Router /events/find [get]
func (c *EventController) FindEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := c.Service.FindEvents(r.Context(), q.Get("keyword"), q.Get("type"),
		middleware.IsAdmin(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventsByStatus godoc
// @Summary Get events classified by time
// @Description Classifies events as past, upcoming, trending or all relative to now. Non-admin callers only see approved events. The response always carries a count.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string true "past, upcoming, trending or all"
// @Success 200 {object} domain.Result
// @Failure 400 {object} domain.Result "invalid event type"
// @Failure 422 {object} domain.Result "no data found"
// @Router /events/status [get]
func (c *EventController) GetEventsByStatus(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetEventsByStatus(r.Context(), r.URL.Query().Get("status"),
		middleware.IsAdmin(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetUserEvents godoc
// @Summary List all events annotated with the user's registrations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} domain.Result "each event carries is_registered"
// @Router /events/userEventList/{userId} [get]
func (c *EventController) GetUserEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.PathValue("userId"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	result, err := c.Service.GetUserEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventTypes godoc
// @Summary List event genres
// @Tags events
// @Produce json
// @Success 200 {object} domain.Result
// @Router /events/types/genre [get]
func (c *EventController) GetEventTypes(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetEventTypes(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventsByCreator godoc
// @Summary List events created by a user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Creator's user ID"
// @Success 200 {object} domain.Result "empty list when the creator owns nothing"
// @Router /events/creator/{userId} [get]
func (c *EventController) GetEventsByCreator(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.PathValue("userId"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	result, err := c.Service.GetEventsByCreator(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event, annotated with is_registered when user_id is supplied. A missing event is a 422 envelope, not an error.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param user_id query int false "Requesting user ID"
// @Success 200 {object} domain.Result
// @Failure 422 {object} domain.Result "no data found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	var requestingUserID *int64
	if s := r.URL.Query().Get("user_id"); s != "" {
		if uid, ok := parseID(s); ok {
			requestingUserID = &uid
		}
	}
	result, err := c.Service.GetEventByID(r.Context(), &id, requestingUserID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// ListEvents godoc
// @Summary List all events
// @Description Returns the full unfiltered event collection.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Result
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetEventByID(r.Context(), nil, nil)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update; absent fields are untouched. Supplied dates are revalidated. Approval changes require the admin role and are rejected whole otherwise.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body domain.UpdateEventInput true "Fields to update"
// @Success 200 {object} domain.Result
// @Failure 400 {object} domain.Result "invalid dates"
// @Failure 403 {object} domain.Result "approval change without admin role"
// @Failure 404 {object} domain.Result
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	var in domain.UpdateEventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.UpdateEvent(r.Context(), id, in, middleware.IsAdmin(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// DeleteEventByID godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /events/{id} [delete]
func (c *EventController) DeleteEventByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	result, err := c.Service.DeleteEventByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}
