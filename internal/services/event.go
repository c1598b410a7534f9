package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type eventService struct {
	eventRepo     domain.EventRepository
	userRepo      domain.UserRepository
	userEventRepo domain.UserEventRepository
	now           func() time.Time
}

// NewEventService creates an EventService over the three repositories. The
// clock is injectable for tests; pass nil for time.Now.
func NewEventService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	userEventRepo domain.UserEventRepository,
	now func() time.Time,
) domain.EventService {
	if now == nil {
		now = time.Now
	}
	return &eventService{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		userEventRepo: userEventRepo,
		now:           now,
	}
}

// parseEventDate accepts RFC 3339 timestamps and bare dates.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func validateCreateEvent(in domain.CreateEventInput) []string {
	var errs []string
	if in.UserID == 0 {
		errs = append(errs, "user_id is required")
	}
	if in.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if in.Location == "" {
		errs = append(errs, "location is required")
	}
	if in.EventStartDate == "" {
		errs = append(errs, "event_start_date is required")
	}
	if in.EventEndDate == "" {
		errs = append(errs, "event_end_date is required")
	}
	if in.Description == "" {
		errs = append(errs, "description is required")
	}
	if in.RegistrationFee < 0 {
		errs = append(errs, "registration_fee must not be negative")
	}
	if in.Trending == nil {
		errs = append(errs, "trending is required")
	}
	if in.EventType == "" {
		errs = append(errs, "event_type is required")
	}
	return errs
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Result, error) {
	// Validation order is contractual: schema, owner, date parse, start not
	// in the past, end not in the past, end not before start, duplicate.
	if errs := validateCreateEvent(in); len(errs) > 0 {
		return domain.Soft(http.StatusBadRequest, errs[0]), nil
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Soft(http.StatusUnprocessableEntity, "User does not exist with this id."), nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	startDate, errStart := parseEventDate(in.EventStartDate)
	endDate, errEnd := parseEventDate(in.EventEndDate)
	if errStart != nil || errEnd != nil {
		return domain.Soft(http.StatusUnprocessableEntity, "Enter valid dates"), nil
	}

	today := startOfDay(s.now())
	if startDate.Before(today) {
		return domain.Soft(http.StatusUnprocessableEntity, "Event start date cannot be in the past"), nil
	}
	if endDate.Before(today) {
		return domain.Soft(http.StatusUnprocessableEntity, "Event end date cannot be in the past"), nil
	}
	if endDate.Before(startDate) {
		return domain.Soft(http.StatusUnprocessableEntity, "Event end date cannot be earlier than start date"), nil
	}

	// Check-then-insert: the window between this lookup and the insert is
	// backstopped by the unique index in the event repository.
	if _, err := s.eventRepo.FindDuplicate(ctx, in.UserID, in.EventName, startDate); err == nil {
		return domain.Soft(http.StatusUnprocessableEntity, "Event already exists"), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find duplicate event: %w", err)
	}

	event := &domain.Event{
		UserID:          in.UserID,
		EventName:       in.EventName,
		Location:        in.Location,
		EventStartDate:  startDate,
		EventEndDate:    endDate,
		Description:     in.Description,
		RegistrationFee: in.RegistrationFee,
		Trending:        *in.Trending,
		EventType:       in.EventType,
		Image:           in.Image,
		Email:           user.Email,
		Phone:           user.Phone,
		UserType:        user.Role,
		Status:          true,
		Approval:        domain.ApprovalPending,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return domain.Soft(http.StatusUnprocessableEntity, "Event already exists"), nil
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return domain.OK("Event saved successfully", event), nil
}

func (s *eventService) GetEventByID(ctx context.Context, id, requestingUserID *int64) (*domain.Result, error) {
	if id == nil {
		events, err := s.eventRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		return domain.OK("All events retrieved successfully", events), nil
	}

	event, err := s.eventRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Soft(http.StatusUnprocessableEntity, "No data found"), nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	isRegister := false
	if requestingUserID != nil {
		if _, err := s.userEventRepo.GetByUserAndEvent(ctx, *requestingUserID, *id); err == nil {
			isRegister = true
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get event registration: %w", err)
		}
	}

	data := []*domain.EventWithRegistration{{Event: *event, IsRegistered: isRegister}}
	return domain.OK("Event found successfully", data), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, in domain.UpdateEventInput, isAdmin bool) (*domain.Result, error) {
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var startDate, endDate *time.Time
	if in.EventStartDate != nil {
		t, err := parseEventDate(*in.EventStartDate)
		if err != nil {
			return nil, domain.ErrInvalidDates
		}
		startDate = &t
	}
	if in.EventEndDate != nil {
		t, err := parseEventDate(*in.EventEndDate)
		if err != nil {
			return nil, domain.ErrInvalidDates
		}
		endDate = &t
	}
	if startDate != nil && startOfDay(*startDate).Before(startOfDay(s.now())) {
		return nil, domain.ErrStartDateInPast
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, domain.ErrEndBeforeStart
	}

	// Approval is admin-only: a non-admin payload carrying it fails whole,
	// nothing is written.
	if in.Approval != nil && !isAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Approval != nil && !in.Approval.Valid() {
		return nil, fmt.Errorf("approval must be one of pending, approved, rejected: %w", domain.ErrInvalidInput)
	}

	upd := domain.EventUpdate{
		EventName:       in.EventName,
		Location:        in.Location,
		EventStartDate:  startDate,
		EventEndDate:    endDate,
		Description:     in.Description,
		RegistrationFee: in.RegistrationFee,
		Trending:        in.Trending,
		EventType:       in.EventType,
		Image:           in.Image,
		Status:          in.Status,
		Approval:        in.Approval,
	}
	updated, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return domain.OK("Event updated successfully", updated), nil
}

func (s *eventService) DeleteEventByID(ctx context.Context, id int64) (*domain.Result, error) {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return domain.OK("Event deleted successfully", nil), nil
}

func (s *eventService) SearchEvents(ctx context.Context, location, name, startDate, endDate string, isAdmin bool) (*domain.Result, error) {
	filter := domain.EventSearchFilter{
		Location:     location,
		Name:         name,
		ApprovedOnly: !isAdmin,
	}
	if startDate != "" && endDate != "" {
		start, errStart := parseEventDate(startDate)
		end, errEnd := parseEventDate(endDate)
		if errStart != nil || errEnd != nil {
			return domain.Soft(http.StatusUnprocessableEntity, "Enter valid dates"), nil
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	events, err := s.eventRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	if len(events) == 0 {
		return domain.Soft(http.StatusUnprocessableEntity, "No data found"), nil
	}
	return domain.OK("Events found successfully", events), nil
}

func (s *eventService) FindEvents(ctx context.Context, keyword, eventType string, isAdmin bool) (*domain.Result, error) {
	if eventType != "" && eventType != "trending" && eventType != "upcoming" {
		return nil, fmt.Errorf("invalid type %q, allowed values are 'trending' or 'upcoming': %w",
			eventType, domain.ErrInvalidInput)
	}

	today := startOfDay(s.now())
	events, err := s.eventRepo.FindFrom(ctx, today, keyword,
		eventType == "trending", eventType == "upcoming", !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return domain.OK("Fetched upcoming events successfully", events), nil
}

func (s *eventService) GetEventsByStatus(ctx context.Context, statusType string, isAdmin bool) (*domain.Result, error) {
	class := domain.TimeClass(statusType)
	switch class {
	case domain.TimeClassPast, domain.TimeClassUpcoming, domain.TimeClassTrending, domain.TimeClassAll:
	default:
		return domain.Soft(http.StatusBadRequest, "Invalid event type"), nil
	}

	events, err := s.eventRepo.ListByTimeClass(ctx, class, s.now(), !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("list events by time class: %w", err)
	}
	count := len(events)
	if count == 0 {
		return domain.SoftCount(http.StatusUnprocessableEntity, "No data found", 0), nil
	}
	return domain.OKCount("Events found successfully", events, count), nil
}

func (s *eventService) GetUserEvents(ctx context.Context, userID int64) (*domain.Result, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	// One query for all of the user's registrations, then a set-membership
	// check per event.
	ids, err := s.userEventRepo.ListEventIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	registered := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		registered[id] = struct{}{}
	}

	annotated := make([]*domain.EventWithRegistration, 0, len(events))
	for _, e := range events {
		_, ok := registered[e.ID]
		annotated = append(annotated, &domain.EventWithRegistration{Event: *e, IsRegistered: ok})
	}
	return domain.OK("Events fetched successfully", annotated), nil
}

//go:embed helper.json
var eventTypesJSON []byte

func (s *eventService) GetEventTypes(ctx context.Context) (*domain.Result, error) {
	var helper struct {
		Events []string `json:"events"`
	}
	if err := json.Unmarshal(eventTypesJSON, &helper); err != nil {
		return nil, fmt.Errorf("parse event types: %w", err)
	}
	return domain.OK("Event types retrieved successfully", helper.Events), nil
}

func (s *eventService) GetEventsByCreator(ctx context.Context, userID int64) (*domain.Result, error) {
	events, err := s.eventRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events by creator: %w", err)
	}
	if len(events) == 0 {
		return domain.OK("No events found for this creator", []*domain.Event{}), nil
	}
	return domain.OK("Events fetched successfully", events), nil
}
