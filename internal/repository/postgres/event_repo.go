package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

const eventColumns = `id, user_id, event_name, location, event_start_date, event_end_date,
		description, registration_fee, trending, event_type, image, email, phone,
		user_type, status, approval, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// scanEvent scans one event row from a row scanner.
func scanEvent(s interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var imageNull sql.NullString
	err := s.Scan(
		&e.ID, &e.UserID, &e.EventName, &e.Location, &e.EventStartDate, &e.EventEndDate,
		&e.Description, &e.RegistrationFee, &e.Trending, &e.EventType, &imageNull,
		&e.Email, &e.Phone, &e.UserType, &e.Status, &e.Approval, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageNull.Valid {
		e.Image = &imageNull.String
	}
	return e, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (user_id, event_name, location, event_start_date, event_end_date,
			description, registration_fee, trending, event_type, image, email, phone,
			user_type, status, approval)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.UserID, e.EventName, e.Location, e.EventStartDate, e.EventEndDate,
		e.Description, e.RegistrationFee, e.Trending, e.EventType, e.Image,
		e.Email, e.Phone, e.UserType, e.Status, e.Approval,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Unique index on (user_id, event_name, event_start_date) backstops
			// the check-then-insert window under concurrent identical requests.
			return domain.ErrDuplicateEvent
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) FindDuplicate(ctx context.Context, userID int64, name string, start time.Time) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE user_id = $1 AND event_name = $2 AND event_start_date = $3
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, userID, name, start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY id`, eventColumns)
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) Update(ctx context.Context, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.EventName != nil {
		add("event_name", *upd.EventName)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.EventStartDate != nil {
		add("event_start_date", *upd.EventStartDate)
	}
	if upd.EventEndDate != nil {
		add("event_end_date", *upd.EventEndDate)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.RegistrationFee != nil {
		add("registration_fee", *upd.RegistrationFee)
	}
	if upd.Trending != nil {
		add("trending", *upd.Trending)
	}
	if upd.EventType != nil {
		add("event_type", *upd.EventType)
	}
	if upd.Image != nil {
		add("image", *upd.Image)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Approval != nil {
		add("approval", string(*upd.Approval))
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Search(ctx context.Context, filter domain.EventSearchFilter) ([]*domain.Event, error) {
	whereClauses := []string{}
	args := []any{}
	n := 1
	if filter.Location != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, filter.Location)
		n++
	}
	if filter.Name != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("event_name ILIKE $%d", n))
		args = append(args, "%"+filter.Name+"%")
		n++
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("event_start_date BETWEEN $%d AND $%d", n, n+1))
		args = append(args, *filter.StartDate, *filter.EndDate)
		n += 2
	}
	if filter.ApprovedOnly {
		whereClauses = append(whereClauses, fmt.Sprintf("approval = $%d", n))
		args = append(args, string(domain.ApprovalApproved))
		n++
	}
	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) FindFrom(ctx context.Context, today time.Time, keyword string, trendingOnly, strictlyUpcoming, approvedOnly bool) ([]*domain.Event, error) {
	whereClauses := []string{"event_start_date >= $1"}
	args := []any{today}
	n := 2
	if keyword != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(event_name ILIKE $%d OR location ILIKE $%d OR event_type ILIKE $%d)", n, n, n))
		args = append(args, "%"+keyword+"%")
		n++
	}
	if trendingOnly {
		whereClauses = append(whereClauses, "trending = TRUE")
	}
	if strictlyUpcoming {
		whereClauses = append(whereClauses, fmt.Sprintf("event_start_date > $%d", n))
		args = append(args, today)
		n++
	}
	if approvedOnly {
		whereClauses = append(whereClauses, fmt.Sprintf("approval = $%d", n))
		args = append(args, string(domain.ApprovalApproved))
		n++
	}
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE %s
		ORDER BY event_start_date DESC
	`, eventColumns, strings.Join(whereClauses, " AND "))
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) ListByTimeClass(ctx context.Context, class domain.TimeClass, now time.Time, approvedOnly bool) ([]*domain.Event, error) {
	whereClauses := []string{}
	args := []any{}
	n := 1
	switch class {
	case domain.TimeClassPast:
		whereClauses = append(whereClauses, fmt.Sprintf("event_start_date < $%d AND event_end_date < $%d", n, n))
		args = append(args, now)
		n++
	case domain.TimeClassUpcoming:
		whereClauses = append(whereClauses, fmt.Sprintf("event_start_date > $%d AND event_end_date > $%d", n, n))
		args = append(args, now)
		n++
	case domain.TimeClassTrending:
		whereClauses = append(whereClauses, fmt.Sprintf("trending = TRUE AND event_start_date >= $%d AND event_end_date >= $%d", n, n))
		args = append(args, now)
		n++
	case domain.TimeClassAll:
		// no time filter
	default:
		return nil, domain.ErrInvalidInput
	}
	if approvedOnly {
		whereClauses = append(whereClauses, fmt.Sprintf("approval = $%d", n))
		args = append(args, string(domain.ApprovalApproved))
		n++
	}
	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, eventColumns)
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) UpdateContactInfo(ctx context.Context, userID int64, email, phone *string) error {
	setClauses := []string{}
	args := []any{}
	n := 1
	if email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", n))
		args = append(args, *email)
		n++
	}
	if phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", n))
		args = append(args, *phone)
		n++
	}
	if n == 1 {
		return nil
	}
	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE user_id = $%d`, strings.Join(setClauses, ", "), n)
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *eventRepository) CountByTypeSince(ctx context.Context, since time.Time) (int, map[string]int, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM events
		WHERE created_at >= $1
		GROUP BY event_type
	`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()
	total := 0
	byType := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return 0, nil, err
		}
		byType[eventType] = count
		total += count
	}
	return total, byType, rows.Err()
}
