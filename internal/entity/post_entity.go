package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is an announcement published to the whole campus.
type Post struct {
	Id         uuid.UUID
	Title      string
	Content    string
	AuthorId   uuid.UUID
	AuthorName string
	CreatedAt  time.Time
}
