package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

const defaultStatsMonths = 6

type adminService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	now       func() time.Time
}

// NewAdminService creates an AdminService over the event and user
// repositories. The clock is injectable for tests; pass nil for time.Now.
func NewAdminService(eventRepo domain.EventRepository, userRepo domain.UserRepository, now func() time.Time) domain.AdminService {
	if now == nil {
		now = time.Now
	}
	return &adminService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		now:       now,
	}
}

func (s *adminService) GetEventsByType(ctx context.Context, eventType string) (*domain.Result, error) {
	class := domain.TimeClass(eventType)
	switch class {
	case domain.TimeClassPast, domain.TimeClassUpcoming, domain.TimeClassTrending, domain.TimeClassAll:
	default:
		return domain.Soft(http.StatusBadRequest, "Invalid event type"), nil
	}

	events, err := s.eventRepo.ListByTimeClass(ctx, class, s.now(), false)
	if err != nil {
		return nil, fmt.Errorf("list events by time class: %w", err)
	}
	count := len(events)
	if count == 0 {
		return domain.SoftCount(http.StatusUnprocessableEntity, "No data found", 0), nil
	}
	return domain.OKCount("Events found successfully", events, count), nil
}

func (s *adminService) UpdateStatusEvent(ctx context.Context, id int64, status bool) (*domain.Result, error) {
	updated, err := s.eventRepo.Update(ctx, id, domain.EventUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return domain.OK("Event status updated successfully", updated), nil
}

// startOfMonth returns midnight on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// endOfMonth returns the last instant of t's month.
func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (s *adminService) GetUserCreationStats(ctx context.Context, months int) (*domain.Result, error) {
	if months <= 0 {
		months = defaultStatsMonths
	}
	now := s.now()

	stats := make([]domain.UserMonthlyCount, 0, months)
	// Bucket 0 is the current month, walking backwards.
	for i := 0; i < months; i++ {
		monthStart := startOfMonth(now.AddDate(0, -i, 0))
		monthEnd := endOfMonth(monthStart)

		count, err := s.userRepo.CountCreatedBetween(ctx, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("count users for %s: %w", monthStart.Format("Jan 2006"), err)
		}
		stats = append(stats, domain.UserMonthlyCount{
			Month: monthStart.Format("Jan 2006"),
			Count: count,
		})
	}

	// Reverse to chronological order, oldest bucket first.
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return domain.OK("User creation statistics retrieved successfully", stats), nil
}

func (s *adminService) GetEventTypeDistribution(ctx context.Context, months int) (*domain.Result, error) {
	if months <= 0 {
		months = defaultStatsMonths
	}
	since := startOfMonth(s.now().AddDate(0, -(months - 1), 0))

	total, byType, err := s.eventRepo.CountByTypeSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}
	if total == 0 {
		return domain.OK("Event type distribution retrieved successfully", []domain.EventTypeCount{}), nil
	}

	distribution := make([]domain.EventTypeCount, 0, len(byType))
	for eventType, count := range byType {
		pct := math.Round(float64(count)/float64(total)*10000) / 100
		distribution = append(distribution, domain.EventTypeCount{
			EventType:  eventType,
			Count:      count,
			Percentage: pct,
		})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].EventType < distribution[j].EventType
	})
	return domain.OK("Event type distribution retrieved successfully", distribution), nil
}
