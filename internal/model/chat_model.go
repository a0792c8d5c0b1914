package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        *string   `gorm:"type:varchar(255)"`
	Type         string    `gorm:"type:conversation_type;not null;default:'group'"`
	Participants []User    `gorm:"many2many:conversation_participants"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;index"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationParticipant struct {
	ConversationId uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt       time.Time `gorm:"autoCreateTime"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

type Channel struct {
	Id             uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string       `gorm:"type:varchar(255);not null"`
	ConversationId uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Conversation   Conversation `gorm:"foreignKey:ConversationId;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
}

func (Channel) TableName() string {
	return "channels"
}

type Subchannel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	ChannelId uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel   Channel   `gorm:"foreignKey:ChannelId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Subchannel) TableName() string {
	return "subchannels"
}

type Message struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content      string     `gorm:"type:text;not null"`
	SubchannelId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subchannel   Subchannel `gorm:"foreignKey:SubchannelId;constraint:OnDelete:CASCADE"`
	AuthorId     *uuid.UUID `gorm:"type:uuid;index"`
	Author       *User      `gorm:"foreignKey:AuthorId;constraint:OnDelete:SET NULL"`
	Timestamp    time.Time  `gorm:"not null;index"`
	IsRead       bool       `gorm:"not null;default:false"`
}

func (Message) TableName() string {
	return "messages"
}
