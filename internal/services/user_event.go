package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type userEventService struct {
	userRepo      domain.UserRepository
	eventRepo     domain.EventRepository
	userEventRepo domain.UserEventRepository
	now           func() time.Time
}

// NewUserEventService creates a UserEventService. The clock is injectable
// for tests; pass nil for time.Now.
func NewUserEventService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	userEventRepo domain.UserEventRepository,
	now func() time.Time,
) domain.UserEventService {
	if now == nil {
		now = time.Now
	}
	return &userEventService{
		userRepo:      userRepo,
		eventRepo:     eventRepo,
		userEventRepo: userEventRepo,
		now:           now,
	}
}

func (s *userEventService) RegisterUserToEvent(ctx context.Context, userID, eventID int64) (*domain.Result, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Soft(http.StatusUnprocessableEntity, "User does not exist with this id."), nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Soft(http.StatusUnprocessableEntity, "Event does not exist with this id."), nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Registering twice is reported, not an error.
	if _, err := s.userEventRepo.GetByUserAndEvent(ctx, userID, eventID); err == nil {
		return domain.OK("User already registered to this event", nil), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	reg := &domain.UserEvent{UserID: userID, EventID: eventID}
	if err := s.userEventRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return domain.OK("User registered to event successfully", reg), nil
}

func (s *userEventService) GetEventUsers(ctx context.Context, eventID int64) (*domain.Result, error) {
	users, err := s.userEventRepo.ListUsersByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list users by event: %w", err)
	}
	if len(users) == 0 {
		return domain.Soft(http.StatusUnprocessableEntity, "No users found for event"), nil
	}
	for _, u := range users {
		u.Password = ""
	}
	return domain.OK("Users retrieved successfully", users), nil
}

func (s *userEventService) GetUserRegisteredEvents(ctx context.Context, userID int64, status string) (*domain.Result, error) {
	if status == "" {
		status = "all"
	}
	switch status {
	case "ongoing", "past", "upcoming", "all":
	default:
		return domain.Soft(http.StatusBadRequest, "Invalid status type"), nil
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	events, err := s.userEventRepo.ListEventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events by user: %w", err)
	}

	now := s.now()
	filtered := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		switch status {
		case "ongoing":
			if !e.EventStartDate.After(now) && !e.EventEndDate.Before(now) {
				filtered = append(filtered, e)
			}
		case "past":
			if e.EventEndDate.Before(now) {
				filtered = append(filtered, e)
			}
		case "upcoming":
			if e.EventStartDate.After(now) {
				filtered = append(filtered, e)
			}
		default:
			filtered = append(filtered, e)
		}
	}

	if len(filtered) == 0 {
		return domain.Soft(http.StatusNotFound, "No events available"), nil
	}
	return domain.OK("Events retrieved successfully", filtered), nil
}
