package contract

import (
	"context"
	"time"

	"campus-connect-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// Create persists the conversation and its participant links in one go.
	Create(ctx context.Context, conversation *entity.Conversation, participantIds []uuid.UUID) error
	// FindOne loads a conversation with its participants, (nil, nil) when absent.
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// ListForUser returns the conversations the user participates in, each
	// annotated with its most recent message, ordered by recency descending.
	ListForUser(ctx context.Context, userId uuid.UUID) ([]*entity.ConversationSummary, error)
	// UpdateRecency bumps the conversation's updated_at to the given instant.
	UpdateRecency(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindChannel(ctx context.Context, conversationId uuid.UUID) (*entity.Channel, error)
	CreateChannel(ctx context.Context, channel *entity.Channel) error
	FindSubchannel(ctx context.Context, channelId uuid.UUID, name string) (*entity.Subchannel, error)
	CreateSubchannel(ctx context.Context, subchannel *entity.Subchannel) error
}
