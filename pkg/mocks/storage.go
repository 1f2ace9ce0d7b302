package mocks

import (
	"context"

	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/stretchr/testify/mock"
)

type Storage struct {
	*mock.Mock
}

func NewStorage() Storage {
	return Storage{Mock: new(mock.Mock)}
}

func (m Storage) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m Storage) Get(ctx context.Context, id string) (entity.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Post), args.Error(1)
}

func (m Storage) GetMultiple(ctx context.Context, page, limit int) ([]entity.Post, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m Storage) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m Storage) Create(ctx context.Context, post entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m Storage) Delete(ctx context.Context, id, userId string) (entity.Post, error) {
	args := m.Called(ctx, id, userId)
	return args.Get(0).(entity.Post), args.Error(1)
}
