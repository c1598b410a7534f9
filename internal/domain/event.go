package domain

import (
	"context"
	"time"
)

// ApprovalStatus is the admin-controlled workflow gate on an event,
// distinct from the owner-controlled active/inactive status flag.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the known approval states.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Event represents an event on the platform. Email, Phone and UserType are
// denormalized copies of the owning user's contact info taken at creation
// time; they are re-synced only when the user's profile is updated.
// swagger:model Event
type Event struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	EventName       string         `json:"event_name"`
	Location        string         `json:"location"`
	EventStartDate  time.Time      `json:"event_start_date"`
	EventEndDate    time.Time      `json:"event_end_date"`
	Description     string         `json:"description"`
	RegistrationFee float64        `json:"registration_fee"`
	Trending        bool           `json:"trending"`
	EventType       string         `json:"event_type"`
	Image           *string        `json:"image,omitempty"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	UserType        string         `json:"user_type"`
	Status          bool           `json:"status"`
	Approval        ApprovalStatus `json:"approval"`
	CreatedAt       time.Time      `json:"created_at"`
}

// EventWithRegistration is an event annotated with whether a given user
// holds a registration for it.
type EventWithRegistration struct {
	Event
	IsRegistered bool `json:"is_registered"`
}

// EventUpdate carries a partial update for an event. Nil fields are left
// untouched.
type EventUpdate struct {
	EventName       *string
	Location        *string
	EventStartDate  *time.Time
	EventEndDate    *time.Time
	Description     *string
	RegistrationFee *float64
	Trending        *bool
	EventType       *string
	Image           *string
	Email           *string
	Phone           *string
	Status          *bool
	Approval        *ApprovalStatus
}

// EventSearchFilter is the conjunctive filter for SearchEvents. Zero-valued
// fields do not narrow the result.
type EventSearchFilter struct {
	Location     string     // exact match
	Name         string     // case-insensitive substring
	StartDate    *time.Time // inclusive window over event_start_date,
	EndDate      *time.Time // applied only when both bounds are set
	ApprovedOnly bool
}

// TimeClass classifies events relative to a point in time.
type TimeClass string

const (
	TimeClassPast     TimeClass = "past"
	TimeClassUpcoming TimeClass = "upcoming"
	TimeClassTrending TimeClass = "trending"
	TimeClassAll      TimeClass = "all"
)

// EventTypeCount is one bucket of the event-type distribution.
type EventTypeCount struct {
	EventType  string  `json:"event_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// FindDuplicate looks up an event by the (user_id, event_name,
	// event_start_date) natural key.
	FindDuplicate(ctx context.Context, userID int64, name string, start time.Time) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id int64, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter EventSearchFilter) ([]*Event, error)
	// FindFrom returns events starting on or after the given day, optionally
	// narrowed by keyword (name/location/type substring), trending flag, or a
	// strictly-after-today start, ordered by event_start_date descending.
	FindFrom(ctx context.Context, today time.Time, keyword string, trendingOnly, strictlyUpcoming, approvedOnly bool) ([]*Event, error)
	// ListByTimeClass classifies events against now. The approval restriction
	// applies on top of the time filter.
	ListByTimeClass(ctx context.Context, class TimeClass, now time.Time, approvedOnly bool) ([]*Event, error)
	ListByCreator(ctx context.Context, userID int64) ([]*Event, error)
	// UpdateContactInfo propagates new user contact details onto all events
	// owned by the user. Nil fields are left untouched.
	UpdateContactInfo(ctx context.Context, userID int64, email, phone *string) error
	// CountByTypeSince returns the total number of events created since the
	// given time along with per-event-type counts.
	CountByTypeSince(ctx context.Context, since time.Time) (total int, byType map[string]int, err error)
}

// EventService defines the business logic around the event lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Result, error)
	// GetEventByID returns a single event when id is set, annotated with an
	// is_register flag when requestingUserID is also set. A nil id returns
	// the full event collection (legacy behavior, intentionally preserved).
	GetEventByID(ctx context.Context, id, requestingUserID *int64) (*Result, error)
	UpdateEvent(ctx context.Context, id int64, in UpdateEventInput, isAdmin bool) (*Result, error)
	DeleteEventByID(ctx context.Context, id int64) (*Result, error)
	SearchEvents(ctx context.Context, location, name, startDate, endDate string, isAdmin bool) (*Result, error)
	FindEvents(ctx context.Context, keyword, eventType string, isAdmin bool) (*Result, error)
	GetEventsByStatus(ctx context.Context, statusType string, isAdmin bool) (*Result, error)
	GetUserEvents(ctx context.Context, userID int64) (*Result, error)
	GetEventsByCreator(ctx context.Context, userID int64) (*Result, error)
	GetEventTypes(ctx context.Context) (*Result, error)
}

// CreateEventInput is the payload for EventService.CreateEvent. Dates are
// ISO strings so the service can apply its own validation ordering.
type CreateEventInput struct {
	UserID          int64   `json:"user_id"`
	EventName       string  `json:"event_name"`
	Location        string  `json:"location"`
	EventStartDate  string  `json:"event_start_date"`
	EventEndDate    string  `json:"event_end_date"`
	Description     string  `json:"description"`
	RegistrationFee float64 `json:"registration_fee"`
	Trending        *bool   `json:"trending"`
	EventType       string  `json:"event_type"`
	Image           *string `json:"image,omitempty"`
}

// UpdateEventInput is the partial payload for EventService.UpdateEvent.
// Absent fields are untouched; "undefined" is not "null".
type UpdateEventInput struct {
	EventName       *string  `json:"event_name,omitempty"`
	Location        *string  `json:"location,omitempty"`
	EventStartDate  *string  `json:"event_start_date,omitempty"`
	EventEndDate    *string  `json:"event_end_date,omitempty"`
	Description     *string  `json:"description,omitempty"`
	RegistrationFee *float64 `json:"registration_fee,omitempty"`
	Trending        *bool    `json:"trending,omitempty"`
	EventType       *string  `json:"event_type,omitempty"`
	Image           *string  `json:"image,omitempty"`
	Status          *bool    `json:"status,omitempty"`
	Approval        *ApprovalStatus `json:"approval,omitempty"`
}
