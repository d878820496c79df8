package models

import "time"

// EventType identifies a server-wide timed event.
type EventType string

const (
	// EventGoldenHour doubles coin collection while active.
	EventGoldenHour EventType = "golden_hour"
	// EventArtifactStorm raises the artifact drop chance while active.
	EventArtifactStorm EventType = "artifact_storm"
)

// Valid reports whether the event type is known
func (e EventType) Valid() bool {
	return e == EventGoldenHour || e == EventArtifactStorm
}

// TimedEvent is a server-wide modifier with a fixed end time.
type TimedEvent struct {
	ID         int64     `db:"id"`
	EventType  EventType `db:"event_type"`
	Multiplier float64   `db:"multiplier"`
	StartedAt  time.Time `db:"started_at"`
	EndsAt     time.Time `db:"ends_at"`
	IsActive   bool      `db:"is_active"`
}

// IsRunning reports whether the event is active and has not passed its end time.
func (e *TimedEvent) IsRunning(now time.Time) bool {
	return e.IsActive && now.Before(e.EndsAt)
}
