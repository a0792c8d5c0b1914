package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	AuthorId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    User      `gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Post) TableName() string {
	return "posts"
}
