package service_test

import (
	"context"
	"errors"
	"testing"

	"go-gin-event-hub/internal/cache"
	cacheMocks "go-gin-event-hub/internal/cache/mocks"
	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	repoMocks "go-gin-event-hub/internal/repository/mocks"
	"go-gin-event-hub/internal/service"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEventServiceMocks() (*repoMocks.EventRepositoryMock, *cacheMocks.EventCacheMock, service.EventService) {
	eventRepo := repoMocks.NewEventRepositoryMock()
	eventCache := cacheMocks.NewEventCacheMock()
	return eventRepo, eventCache, service.NewEventService(eventRepo, eventCache, normalize.NewPipeline())
}

func createParams() model.CreateEventParams {
	return model.CreateEventParams{
		Title:       "My Event!!  2025",
		Description: "  A day of talks ",
		Overview:    "Overview",
		Image:       "https://cdn.example.com/events/1.png",
		Venue:       "Hall A",
		Location:    "Berlin, DE",
		Date:        "March 5, 2025",
		Time:        "2:30 PM",
		Mode:        "offline",
		Audience:    "Developers",
		Agenda:      []string{"Keynote"},
		Organizer:   "Go Berlin",
		Tags:        []string{"go"},
	}
}

func storedEvent() *model.Event {
	e := createParams().ToEvent()
	e.ID = 1
	e.Slug = "my-event-2025"
	e.Description = "A day of talks"
	e.Date = "2025-03-05"
	e.Time = "14:30"
	return e
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - record normalized before write", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()

		eventRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Event) bool {
			return e.Slug == "my-event-2025" &&
				e.Date == "2025-03-05" &&
				e.Time == "14:30" &&
				e.Description == "A day of talks" &&
				e.EventID.String() != "00000000-0000-0000-0000-000000000000"
		})).Return(storedEvent(), nil).Once()

		created, err := eventService.Create(ctx, createParams())

		require.NoError(t, err)
		assert.Equal(t, "my-event-2025", created.Slug)
		eventRepo.AssertExpectations(t)
		eventCache.AssertExpectations(t)
	})

	t.Run("Failed - invalid date is not written", func(t *testing.T) {
		eventRepo, _, eventService := setupEventServiceMocks()

		params := createParams()
		params.Date = "not-a-date"

		_, err := eventService.Create(ctx, params)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - missing fields and empty tags", func(t *testing.T) {
		eventRepo, _, eventService := setupEventServiceMocks()

		params := createParams()
		params.Organizer = "   "
		params.Tags = []string{}

		_, err := eventService.Create(ctx, params)

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Organizer is required", verr.Fields["organizer"])
		assert.Equal(t, "Tags must contain at least one item", verr.Fields["tags"])
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - slug conflict from store", func(t *testing.T) {
		eventRepo, _, eventService := setupEventServiceMocks()

		eventRepo.On("Create", ctx, mock.Anything).Return(nil, apperrors.ErrSlugConflict).Once()

		_, err := eventService.Create(ctx, createParams())

		assert.ErrorIs(t, err, apperrors.ErrSlugConflict)
		eventRepo.AssertExpectations(t)
	})
}

func TestEventService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - cache hit", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()

		eventCache.On("Get", ctx, "my-event-2025").Return(storedEvent(), nil).Once()

		event, err := eventService.GetBySlug(ctx, "my-event-2025")

		require.NoError(t, err)
		assert.Equal(t, 1, event.ID)
		eventCache.AssertExpectations(t)
		eventRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("Success - cache miss reads store and fills cache", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		event := storedEvent()

		eventCache.On("Get", ctx, "my-event-2025").Return(nil, cache.ErrCacheMiss).Once()
		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(event, nil).Once()
		eventCache.On("Set", ctx, event).Return(nil).Once()

		got, err := eventService.GetBySlug(ctx, "my-event-2025")

		require.NoError(t, err)
		assert.Same(t, event, got)
		eventRepo.AssertExpectations(t)
		eventCache.AssertExpectations(t)
	})

	t.Run("Success - cache unavailable falls back to store", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		event := storedEvent()

		eventCache.On("Get", ctx, "my-event-2025").Return(nil, errors.New("redis down")).Once()
		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(event, nil).Once()
		eventCache.On("Set", ctx, event).Return(errors.New("redis down")).Once()

		got, err := eventService.GetBySlug(ctx, "my-event-2025")

		require.NoError(t, err)
		assert.Same(t, event, got)
		eventRepo.AssertExpectations(t)
	})

	t.Run("Failed - invalid slug", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()

		_, err := eventService.GetBySlug(ctx, "Bad_Slug")

		assert.ErrorIs(t, err, apperrors.ErrInvalidSlug)
		eventCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		eventRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()

		eventCache.On("Get", ctx, "missing").Return(nil, cache.ErrCacheMiss).Once()
		eventRepo.On("FindBySlug", ctx, "missing").Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := eventService.GetBySlug(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		eventCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})
}

func TestEventService_UpdateBySlug(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("Success - title change regenerates slug and invalidates both keys", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		current := storedEvent()

		updated := storedEvent()
		updated.Title = "Go Day 2026"
		updated.Slug = "go-day-2026"

		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(current, nil).Once()
		eventRepo.On("Update", ctx, 1, mock.MatchedBy(func(e *model.Event) bool {
			return e.Slug == "go-day-2026" && e.Date == "2025-03-05"
		}), model.NewFields(model.FieldTitle)).Return(updated, nil).Once()
		eventCache.On("Invalidate", ctx, []string{"my-event-2025", "go-day-2026"}).Return(nil).Once()

		got, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{Title: strPtr(" Go Day 2026 ")})

		require.NoError(t, err)
		assert.Equal(t, "go-day-2026", got.Slug)
		eventRepo.AssertExpectations(t)
		eventCache.AssertExpectations(t)
	})

	t.Run("Success - only modified fields are re-normalized", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		current := storedEvent()
		// 舊資料中的非標準值，未修改時不應重新檢查
		current.Date = "legacy date"

		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(current, nil).Once()
		eventRepo.On("Update", ctx, 1, mock.MatchedBy(func(e *model.Event) bool {
			return e.Time == "18:00" && e.Date == "legacy date" && e.Slug == "my-event-2025"
		}), model.NewFields(model.FieldTime)).Return(current, nil).Once()
		eventCache.On("Invalidate", ctx, mock.Anything).Return(nil).Once()

		_, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{Time: strPtr("6:00 pm")})

		require.NoError(t, err)
		eventRepo.AssertExpectations(t)
	})

	t.Run("Failed - invalid time leaves stored record untouched", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		current := storedEvent()

		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(current, nil).Once()

		_, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{Time: strPtr("25:99")})

		assert.ErrorIs(t, err, apperrors.ErrInvalidTime)
		assert.Equal(t, "14:30", current.Time)
		eventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		eventCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("Failed - empty agenda", func(t *testing.T) {
		eventRepo, _, eventService := setupEventServiceMocks()

		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(storedEvent(), nil).Once()

		_, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{Agenda: []string{}})

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Agenda must contain at least one item", verr.Fields["agenda"])
	})

	t.Run("Failed - nothing to update", func(t *testing.T) {
		eventRepo, _, eventService := setupEventServiceMocks()

		_, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		eventRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("Success - cache invalidate failure does not fail update", func(t *testing.T) {
		eventRepo, eventCache, eventService := setupEventServiceMocks()
		current := storedEvent()

		eventRepo.On("FindBySlug", ctx, "my-event-2025").Return(current, nil).Once()
		eventRepo.On("Update", ctx, 1, mock.Anything, model.NewFields(model.FieldVenue)).Return(current, nil).Once()
		eventCache.On("Invalidate", ctx, mock.Anything).Return(errors.New("redis down")).Once()

		_, err := eventService.UpdateBySlug(ctx, "my-event-2025", model.UpdateEventParams{Venue: strPtr("Hall C")})

		require.NoError(t, err)
		eventCache.AssertExpectations(t)
	})
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, eventService := setupEventServiceMocks()

	eventRepo.On("List", ctx).Return([]*model.Event{storedEvent()}, nil).Once()

	events, err := eventService.List(ctx)

	require.NoError(t, err)
	assert.Len(t, events, 1)
	eventRepo.AssertExpectations(t)
}
