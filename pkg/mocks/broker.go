package mocks

import (
	"context"

	"github.com/pulsefeed/post-events/pkg/event"
	"github.com/stretchr/testify/mock"
)

type Broker struct {
	*mock.Mock
}

func NewBroker() Broker {
	return Broker{Mock: new(mock.Mock)}
}

func (m Broker) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m Broker) ResilientPublish(e event.Event) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m Broker) Subscribe(ctx context.Context, eType event.EventType, handler event.HandlerFunc) error {
	args := m.Called(ctx, eType, handler)
	return args.Error(0)
}

func (m Broker) Close() error {
	args := m.Called()
	return args.Error(0)
}
