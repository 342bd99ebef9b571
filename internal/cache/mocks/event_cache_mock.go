package mocks

import (
	"context"

	"go-gin-event-hub/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventCacheMock struct {
	mock.Mock
}

func NewEventCacheMock() *EventCacheMock {
	return &EventCacheMock{}
}

func (m *EventCacheMock) Get(ctx context.Context, slug string) (*model.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventCacheMock) Set(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventCacheMock) Invalidate(ctx context.Context, slugs ...string) error {
	args := m.Called(ctx, slugs)
	return args.Error(0)
}
