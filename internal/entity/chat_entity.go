package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationType string

const (
	ConversationTypeDirect  ConversationType = "direct"
	ConversationTypeGroup   ConversationType = "group"
	ConversationTypeSupport ConversationType = "support"
)

// Conversation owns its Channel and, transitively, Subchannels and Messages.
// Participants define both REST access and realtime topic membership.
type Conversation struct {
	Id           uuid.UUID
	Title        *string
	Type         ConversationType
	Participants []*User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *Conversation) HasParticipant(userId uuid.UUID) bool {
	for _, p := range c.Participants {
		if p.Id == userId {
			return true
		}
	}
	return false
}

type Channel struct {
	Id             uuid.UUID
	Name           string
	ConversationId uuid.UUID
	CreatedAt      time.Time
}

type Subchannel struct {
	Id        uuid.UUID
	Name      string
	ChannelId uuid.UUID
	CreatedAt time.Time
}

// Message is immutable after creation except for the IsRead flag, which is
// monotonic (false to true, never back). AuthorId is nil when the author
// account was deleted.
type Message struct {
	Id           uuid.UUID
	Content      string
	SubchannelId uuid.UUID
	AuthorId     *uuid.UUID
	AuthorName   string
	Timestamp    time.Time
	IsRead       bool
}

// LastMessage is the recency annotation attached to a conversation listing.
type LastMessage struct {
	Id         uuid.UUID
	Content    string
	AuthorId   *uuid.UUID
	AuthorName string
	Timestamp  time.Time
	IsRead     bool
}

type ConversationSummary struct {
	Conversation
	LastMessage *LastMessage
}
