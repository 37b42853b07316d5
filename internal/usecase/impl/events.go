// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bookshelf/internal/delivery/context"
	"bookshelf/internal/domain/entity"
	"bookshelf/internal/domain/service"
)

// publishUserEvent emits an account event after the change is committed.
// A failed publish is logged and never fails the request.
func publishUserEvent(ctx context.Context, logger *slog.Logger, publisher service.EventPublisher, eventType entity.UserEventType, user *entity.User) {
	if publisher == nil || user == nil {
		return
	}

	event := &entity.UserEvent{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishUserEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish user event",
			slog.String("type", string(eventType)),
			slog.Uint64("userID", uint64(user.ID)),
			slog.Any("error", err),
		)
	}
}
