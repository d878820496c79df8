package service

import (
	"context"
	"testing"
	"time"

	"vaultrush/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTimedEventService_StartGoldenHour(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockEventRepo := new(MockEventRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, nil, nil, mockEventRepo, nil)
	mockUoW.SetEventBus(mockBus)

	service := NewTimedEventService(mockFactory)

	created := &models.TimedEvent{
		ID:         1,
		EventType:  models.EventGoldenHour,
		Multiplier: 2.0,
		EndsAt:     time.Now().Add(10 * time.Minute),
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockEventRepo.On("HasActiveOfType", ctx, models.EventGoldenHour).Return(false, nil)
	mockEventRepo.On("Create", ctx, models.EventGoldenHour, 2.0, mock.Anything).Return(created, nil)
	mockBus.On("Publish", mock.Anything).Return()

	event, err := service.StartGoldenHour(ctx)

	assert.NoError(t, err)
	assert.Equal(t, models.EventGoldenHour, event.EventType)
	assert.Equal(t, 2.0, event.Multiplier)
	mockEventRepo.AssertExpectations(t)
}

func TestTimedEventService_StartGoldenHour_AlreadyRunning(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockEventRepo := new(MockEventRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, nil, nil, mockEventRepo, nil)

	service := NewTimedEventService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockEventRepo.On("HasActiveOfType", ctx, models.EventGoldenHour).Return(true, nil)

	event, err := service.StartGoldenHour(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
	assert.Nil(t, event)
	mockEventRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTimedEventService_StartArtifactStorm(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockEventRepo := new(MockEventRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, nil, nil, mockEventRepo, nil)
	mockUoW.SetEventBus(mockBus)

	service := NewTimedEventService(mockFactory)

	created := &models.TimedEvent{
		ID:         2,
		EventType:  models.EventArtifactStorm,
		Multiplier: 1.0,
		EndsAt:     time.Now().Add(time.Hour),
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockEventRepo.On("HasActiveOfType", ctx, models.EventArtifactStorm).Return(false, nil)
	mockEventRepo.On("Create", ctx, models.EventArtifactStorm, 1.0, mock.Anything).Return(created, nil)
	mockBus.On("Publish", mock.Anything).Return()

	event, err := service.StartArtifactStorm(ctx)

	assert.NoError(t, err)
	assert.Equal(t, models.EventArtifactStorm, event.EventType)
	mockEventRepo.AssertExpectations(t)
}

func TestTimedEventService_ExpireEvents(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockEventRepo := new(MockEventRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, nil, nil, mockEventRepo, nil)

	service := NewTimedEventService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockEventRepo.On("DeactivateExpired", ctx).Return(int64(3), nil)

	expired, err := service.ExpireEvents(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), expired)
	mockEventRepo.AssertExpectations(t)
}

func TestTimedEventService_ActiveEvents(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockEventRepo := new(MockEventRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, nil, nil, mockEventRepo, nil)

	service := NewTimedEventService(mockFactory)

	active := []*models.TimedEvent{
		{ID: 1, EventType: models.EventGoldenHour, Multiplier: 2.0},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockEventRepo.On("GetActive", ctx).Return(active, nil)

	events, err := service.ActiveEvents(ctx)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	// No Commit() expected for reads
	mockUoW.AssertNotCalled(t, "Commit")
}
