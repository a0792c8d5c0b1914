package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySubchannelID struct {
	SubchannelID uuid.UUID
}

func (s BySubchannelID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subchannel_id = ?", s.SubchannelID)
}

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByChannelID struct {
	ChannelID uuid.UUID
}

func (s ByChannelID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel_id = ?", s.ChannelID)
}
