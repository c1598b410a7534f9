package domain

import "errors"

// Sentinel errors for hard failures. Services wrap these with context;
// controllers translate them to transport status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden, only admin can access this")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrDuplicateEvent = errors.New("event already exists")

	ErrInvalidDates    = errors.New("enter valid dates")
	ErrStartDateInPast = errors.New("event start date cannot be in the past")
	ErrEndBeforeStart  = errors.New("event end date cannot be earlier than start date")
)
