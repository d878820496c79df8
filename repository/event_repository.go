package repository

import (
	"context"
	"fmt"
	"time"

	"vaultrush/database"
	"vaultrush/models"
)

// EventRepository implements the EventRepository interface
type EventRepository struct {
	q queryable
}

// NewEventRepository creates a new timed event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{q: db.Pool}
}

func newEventRepositoryWithTx(tx queryable) *EventRepository {
	return &EventRepository{q: tx}
}

// Create starts a new timed event
func (r *EventRepository) Create(ctx context.Context, eventType models.EventType, multiplier float64, endsAt time.Time) (*models.TimedEvent, error) {
	query := `
		INSERT INTO timed_events (event_type, multiplier, ends_at)
		VALUES ($1, $2, $3)
		RETURNING id, started_at, is_active
	`

	event := &models.TimedEvent{
		EventType:  eventType,
		Multiplier: multiplier,
		EndsAt:     endsAt,
	}
	err := r.q.QueryRow(ctx, query, eventType, multiplier, endsAt).
		Scan(&event.ID, &event.StartedAt, &event.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s event: %w", eventType, err)
	}

	return event, nil
}

// GetActive returns events flagged active whose end time has not passed
func (r *EventRepository) GetActive(ctx context.Context) ([]*models.TimedEvent, error) {
	query := `
		SELECT id, event_type, multiplier, started_at, ends_at, is_active
		FROM timed_events
		WHERE is_active AND ends_at > NOW()
		ORDER BY ends_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active events: %w", err)
	}
	defer rows.Close()

	var eventsList []*models.TimedEvent
	for rows.Next() {
		var e models.TimedEvent
		err := rows.Scan(&e.ID, &e.EventType, &e.Multiplier, &e.StartedAt, &e.EndsAt, &e.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		eventsList = append(eventsList, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return eventsList, nil
}

// HasActiveOfType reports whether an event of the type is currently running
func (r *EventRepository) HasActiveOfType(ctx context.Context, eventType models.EventType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM timed_events
			WHERE event_type = $1 AND is_active AND ends_at > NOW()
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, eventType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active %s event: %w", eventType, err)
	}
	return exists, nil
}

// DeactivateExpired flips off events past their end time, returning how many
func (r *EventRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	query := `
		UPDATE timed_events
		SET is_active = FALSE
		WHERE is_active AND ends_at <= NOW()
	`

	result, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired events: %w", err)
	}

	return result.RowsAffected(), nil
}
