package contract

import (
	"context"

	"campus-connect-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindAllBySubchannel returns messages ordered by timestamp ascending,
	// with message id as the tie-breaker, author name resolved.
	FindAllBySubchannel(ctx context.Context, subchannelId uuid.UUID) ([]*entity.Message, error)
	// MarkAllRead flags every unread message in the subchannel not authored by
	// the given user and reports how many rows changed.
	MarkAllRead(ctx context.Context, subchannelId uuid.UUID, exceptAuthor uuid.UUID) (int64, error)
}
