package service

import (
	"context"
	"errors"

	"go-gin-event-hub/internal/cache"
	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/repository"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	// Create 正規化並驗證後寫入；任何一步失敗都不會寫入資料庫
	Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error)
	// UpdateBySlug 只重新正規化有修改的欄位
	UpdateBySlug(ctx context.Context, slug string, params model.UpdateEventParams) (*model.Event, error)
}

type EventServiceImpl struct {
	repo     repository.EventRepository
	cache    cache.EventCache
	pipeline *normalize.Pipeline
}

func NewEventService(repo repository.EventRepository, eventCache cache.EventCache, pipeline *normalize.Pipeline) EventService {
	return &EventServiceImpl{repo: repo, cache: eventCache, pipeline: pipeline}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if !normalize.ValidSlug(slug) {
		return nil, apperrors.ErrInvalidSlug
	}

	log := logger.WithComponent("service").With(zap.String("slug", slug))

	cached, err := s.cache.Get(ctx, slug)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Redis 不可用時直接讀資料庫
		log.Warn("event cache get failed", zap.Error(err))
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, event); err != nil {
		log.Warn("event cache set failed", zap.Error(err))
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	event := params.ToEvent()
	event.EventID = uuid.New()

	if err := s.pipeline.Prepare(event, model.AllFields()); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) UpdateBySlug(ctx context.Context, slug string, params model.UpdateEventParams) (*model.Event, error) {
	changed := params.ChangedFields()
	if len(changed) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	current, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	next := *current
	params.Apply(&next)
	if err := s.pipeline.Prepare(&next, changed); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, current.ID, &next, changed)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, current.Slug, updated.Slug); err != nil {
		logger.WithComponent("service").Warn("event cache invalidate failed",
			zap.String("slug", current.Slug), zap.Error(err))
	}
	return updated, nil
}
