package domain

import "context"

// UserEvent is the registration join row linking a user to an event.
// Existence of a row is the sole registration indicator.
// swagger:model UserEvent
type UserEvent struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// UserEventRepository defines storage operations for registrations.
type UserEventRepository interface {
	Create(ctx context.Context, reg *UserEvent) error
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*UserEvent, error)
	// ListEventIDsByUser returns the ids of every event the user is
	// registered for, in a single query.
	ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	ListUsersByEvent(ctx context.Context, eventID int64) ([]*User, error)
	ListEventsByUser(ctx context.Context, userID int64) ([]*Event, error)
}

// UserEventService defines registration operations.
type UserEventService interface {
	// RegisterUserToEvent records that the user attends the event. Both
	// sides must exist; re-registering is reported, not an error.
	RegisterUserToEvent(ctx context.Context, userID, eventID int64) (*Result, error)
	GetEventUsers(ctx context.Context, eventID int64) (*Result, error)
	// GetUserRegisteredEvents returns the user's registered events filtered
	// by status: ongoing, past, upcoming or all.
	GetUserRegisteredEvents(ctx context.Context, userID int64, status string) (*Result, error)
}
