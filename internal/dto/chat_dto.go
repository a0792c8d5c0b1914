package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	ParticipantIds []uuid.UUID `json:"participant_ids" validate:"required,min=1"`
	Title          *string     `json:"title" validate:"omitempty,max=255"`
}

type ParticipantDTO struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type LastMessageDTO struct {
	Id         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	AuthorId   *uuid.UUID `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Timestamp  time.Time  `json:"timestamp"`
	IsRead     bool       `json:"is_read"`
}

type ChatResponse struct {
	Id           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Type         string           `json:"type"`
	Participants []ParticipantDTO `json:"participants"`
	LastMessage  *LastMessageDTO  `json:"last_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	AuthorId   *uuid.UUID `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Timestamp  time.Time  `json:"timestamp"`
	IsRead     bool       `json:"is_read"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// MessagePublishedPayload travels over the in-process bus from the chat
// service to the realtime dispatcher after a message commits.
type MessagePublishedPayload struct {
	ChatId       uuid.UUID   `json:"chat_id"`
	MessageId    uuid.UUID   `json:"message_id"`
	Content      string      `json:"content"`
	AuthorId     uuid.UUID   `json:"author_id"`
	AuthorName   string      `json:"author_name"`
	Timestamp    time.Time   `json:"timestamp"`
	RecipientIds []uuid.UUID `json:"recipient_ids"`
}
