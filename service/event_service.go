package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"vaultrush/events"
	"vaultrush/models"
)

const (
	goldenHourDuration   = 10 * time.Minute
	goldenHourMultiplier = 2.0
	artifactStormLength  = time.Hour
)

type timedEventService struct {
	uowFactory UnitOfWorkFactory
	rng        *rand.Rand
}

// NewTimedEventService creates a new timed event service
func NewTimedEventService(uowFactory UnitOfWorkFactory) TimedEventService {
	return &timedEventService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *timedEventService) StartGoldenHour(ctx context.Context) (*models.TimedEvent, error) {
	return s.startEvent(ctx, models.EventGoldenHour, goldenHourMultiplier, goldenHourDuration)
}

func (s *timedEventService) StartArtifactStorm(ctx context.Context) (*models.TimedEvent, error) {
	return s.startEvent(ctx, models.EventArtifactStorm, 1.0, artifactStormLength)
}

// startEvent creates the event unless one of the same type is already
// running.
func (s *timedEventService) startEvent(ctx context.Context, eventType models.EventType, multiplier float64, duration time.Duration) (*models.TimedEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	running, err := uow.EventRepository().HasActiveOfType(ctx, eventType)
	if err != nil {
		return nil, err
	}
	if running {
		return nil, fmt.Errorf("a %s is already running", eventType)
	}

	event, err := uow.EventRepository().Create(ctx, eventType, multiplier, time.Now().Add(duration))
	if err != nil {
		return nil, fmt.Errorf("failed to start event: %w", err)
	}

	uow.EventBus().Publish(events.EventStartedEvent{
		EventID:    event.ID,
		EventType:  eventType,
		Multiplier: multiplier,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return event, nil
}

func (s *timedEventService) ActiveEvents(ctx context.Context) ([]*models.TimedEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.EventRepository().GetActive(ctx)
}

func (s *timedEventService) ExpireEvents(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	expired, err := uow.EventRepository().DeactivateExpired(ctx)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return expired, nil
}

// MaybeStartRandom rolls for a spontaneous event: 40% golden hour, 20%
// artifact storm, otherwise nothing.
func (s *timedEventService) MaybeStartRandom(ctx context.Context) (*models.TimedEvent, error) {
	roll := s.rng.Float64()
	switch {
	case roll < 0.4:
		return s.StartGoldenHour(ctx)
	case roll < 0.6:
		return s.StartArtifactStorm(ctx)
	}
	return nil, nil
}
