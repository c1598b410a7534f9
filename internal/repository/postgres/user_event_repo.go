package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// prefixColumns qualifies every column in a comma-separated list with a
// table alias, for joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

type userEventRepository struct {
	DB *sql.DB
}

func NewUserEventRepository(db *sql.DB) domain.UserEventRepository {
	return &userEventRepository{
		DB: db,
	}
}

func (r *userEventRepository) Create(ctx context.Context, reg *domain.UserEvent) error {
	query := `
		INSERT INTO user_events (user_id, event_id)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, reg.UserID, reg.EventID).Scan(&reg.ID)
}

func (r *userEventRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.UserEvent, error) {
	query := `
		SELECT id, user_id, event_id
		FROM user_events
		WHERE user_id = $1 AND event_id = $2
	`
	reg := &domain.UserEvent{}
	err := r.DB.QueryRowContext(ctx, query, userID, eventID).
		Scan(&reg.ID, &reg.UserID, &reg.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *userEventRepository) ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT event_id FROM user_events WHERE user_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userEventRepository) ListUsersByEvent(ctx context.Context, eventID int64) ([]*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users u
		JOIN user_events ue ON ue.user_id = u.id
		WHERE ue.event_id = $1
		ORDER BY u.id
	`, prefixColumns("u", userColumns))
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userEventRepository) ListEventsByUser(ctx context.Context, userID int64) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events e
		JOIN user_events ue ON ue.event_id = e.id
		WHERE ue.user_id = $1
		ORDER BY e.event_start_date DESC
	`, prefixColumns("e", eventColumns))
	rows, err := r.DB.QueryContext(ctx, query, userID)
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
