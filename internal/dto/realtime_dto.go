package dto

import (
	"time"

	"github.com/google/uuid"
)

// Socket frame shapes. Every frame carries a "type" discriminator so one
// socket can multiplex event kinds.

type MessageNewEvent struct {
	Type       string     `json:"type"`
	ChatId     uuid.UUID  `json:"chat_id"`
	MessageId  uuid.UUID  `json:"message_id"`
	Content    string     `json:"content"`
	AuthorId   *uuid.UUID `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Timestamp  time.Time  `json:"timestamp"`
}

type ChatNotificationEvent struct {
	Type       string    `json:"type"`
	ChatId     uuid.UUID `json:"chat_id"`
	Preview    string    `json:"preview"`
	AuthorId   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Timestamp  time.Time `json:"timestamp"`
}

type AnnouncementEvent struct {
	Type       string    `json:"type"`
	PostId     uuid.UUID `json:"post_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	Timestamp  time.Time `json:"timestamp"`
}
