package service

import (
	"context"

	"bookshelf/internal/domain/entity"
)

// EventPublisher defines the interface for publishing account events to a message queue
type EventPublisher interface {
	// PublishUserEvent publishes an account lifecycle event
	PublishUserEvent(ctx context.Context, event *entity.UserEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
