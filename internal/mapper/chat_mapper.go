package mapper

import (
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/model"
)

type ChatMapper struct {
	userMapper *UserMapper
}

func NewChatMapper(userMapper *UserMapper) *ChatMapper {
	return &ChatMapper{userMapper: userMapper}
}

func (m *ChatMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	participants := make([]*entity.User, len(c.Participants))
	for i := range c.Participants {
		participants[i] = m.userMapper.ToEntity(&c.Participants[i])
	}
	return &entity.Conversation{
		Id:           c.Id,
		Title:        c.Title,
		Type:         entity.ConversationType(c.Type),
		Participants: participants,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	participants := make([]model.User, len(c.Participants))
	for i, p := range c.Participants {
		participants[i] = *m.userMapper.ToModel(p)
	}
	return &model.Conversation{
		Id:           c.Id,
		Title:        c.Title,
		Type:         string(c.Type),
		Participants: participants,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatMapper) ChannelToEntity(c *model.Channel) *entity.Channel {
	if c == nil {
		return nil
	}
	return &entity.Channel{
		Id:             c.Id,
		Name:           c.Name,
		ConversationId: c.ConversationId,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ChatMapper) ChannelToModel(c *entity.Channel) *model.Channel {
	if c == nil {
		return nil
	}
	return &model.Channel{
		Id:             c.Id,
		Name:           c.Name,
		ConversationId: c.ConversationId,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ChatMapper) SubchannelToEntity(s *model.Subchannel) *entity.Subchannel {
	if s == nil {
		return nil
	}
	return &entity.Subchannel{
		Id:        s.Id,
		Name:      s.Name,
		ChannelId: s.ChannelId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) SubchannelToModel(s *entity.Subchannel) *model.Subchannel {
	if s == nil {
		return nil
	}
	return &model.Subchannel{
		Id:        s.Id,
		Name:      s.Name,
		ChannelId: s.ChannelId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	authorName := ""
	if msg.Author != nil {
		authorName = msg.Author.Name
	}
	return &entity.Message{
		Id:           msg.Id,
		Content:      msg.Content,
		SubchannelId: msg.SubchannelId,
		AuthorId:     msg.AuthorId,
		AuthorName:   authorName,
		Timestamp:    msg.Timestamp,
		IsRead:       msg.IsRead,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:           msg.Id,
		Content:      msg.Content,
		SubchannelId: msg.SubchannelId,
		AuthorId:     msg.AuthorId,
		Timestamp:    msg.Timestamp,
		IsRead:       msg.IsRead,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
