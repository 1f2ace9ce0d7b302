package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Deleter struct {
	*mock.Mock
}

func NewDeleter() Deleter {
	return Deleter{Mock: new(mock.Mock)}
}

func (m Deleter) Delete(ctx context.Context, publicId string) error {
	args := m.Called(ctx, publicId)
	return args.Error(0)
}
