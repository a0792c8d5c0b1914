package implementation

import (
	"context"
	"errors"
	"time"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/mapper"
	"campus-connect-be/internal/model"
	"campus-connect-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(mapper.NewUserMapper()),
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation, participantIds []uuid.UUID) error {
	modelConversation := &model.Conversation{
		Id:    conversation.Id,
		Title: conversation.Title,
		Type:  string(conversation.Type),
	}
	if modelConversation.Id == uuid.Nil {
		modelConversation.Id = uuid.New()
	}

	if err := r.db.WithContext(ctx).Omit("Participants").Create(modelConversation).Error; err != nil {
		return err
	}

	links := make([]model.ConversationParticipant, len(participantIds))
	for i, userId := range participantIds {
		links[i] = model.ConversationParticipant{
			ConversationId: modelConversation.Id,
			UserId:         userId,
		}
	}
	if len(links) > 0 {
		if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	created, err := r.FindOne(ctx, modelConversation.Id)
	if err != nil {
		return err
	}
	*conversation = *created
	return nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var modelConversation model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&modelConversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationToEntity(&modelConversation), nil
}

type lastMessageRow struct {
	ConversationId uuid.UUID
	Id             uuid.UUID
	Content        string
	AuthorId       *uuid.UUID
	AuthorName     *string
	Timestamp      time.Time
	IsRead         bool
}

func (r *ConversationRepositoryImpl) ListForUser(ctx context.Context, userId uuid.UUID) ([]*entity.ConversationSummary, error) {
	var modelConversations []*model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userId).
		Order("conversations.updated_at DESC").
		Find(&modelConversations).Error
	if err != nil {
		return nil, err
	}
	if len(modelConversations) == 0 {
		return []*entity.ConversationSummary{}, nil
	}

	conversationIds := make([]uuid.UUID, len(modelConversations))
	for i, c := range modelConversations {
		conversationIds[i] = c.Id
	}

	// Latest message per conversation in one pass, resolved through the
	// subchannel and channel the message hangs off of.
	var rows []lastMessageRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (ch.conversation_id)
			ch.conversation_id,
			m.id,
			m.content,
			m.author_id,
			u.name AS author_name,
			m.timestamp,
			m.is_read
		FROM messages m
		JOIN subchannels s ON s.id = m.subchannel_id
		JOIN channels ch ON ch.id = s.channel_id
		LEFT JOIN users u ON u.id = m.author_id
		WHERE ch.conversation_id IN ?
		ORDER BY ch.conversation_id, m.timestamp DESC, m.id DESC
	`, conversationIds).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lastByConversation := make(map[uuid.UUID]*entity.LastMessage, len(rows))
	for _, row := range rows {
		authorName := ""
		if row.AuthorName != nil {
			authorName = *row.AuthorName
		}
		lastByConversation[row.ConversationId] = &entity.LastMessage{
			Id:         row.Id,
			Content:    row.Content,
			AuthorId:   row.AuthorId,
			AuthorName: authorName,
			Timestamp:  row.Timestamp,
			IsRead:     row.IsRead,
		}
	}

	summaries := make([]*entity.ConversationSummary, len(modelConversations))
	for i, c := range modelConversations {
		summaries[i] = &entity.ConversationSummary{
			Conversation: *r.mapper.ConversationToEntity(c),
			LastMessage:  lastByConversation[c.Id],
		}
	}
	return summaries, nil
}

func (r *ConversationRepositoryImpl) UpdateRecency(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Conversation{}).Error
}

func (r *ConversationRepositoryImpl) FindChannel(ctx context.Context, conversationId uuid.UUID) (*entity.Channel, error) {
	var modelChannel model.Channel
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).First(&modelChannel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChannelToEntity(&modelChannel), nil
}

func (r *ConversationRepositoryImpl) CreateChannel(ctx context.Context, channel *entity.Channel) error {
	modelChannel := r.mapper.ChannelToModel(channel)
	if err := r.db.WithContext(ctx).Create(modelChannel).Error; err != nil {
		return err
	}
	*channel = *r.mapper.ChannelToEntity(modelChannel)
	return nil
}

func (r *ConversationRepositoryImpl) FindSubchannel(ctx context.Context, channelId uuid.UUID, name string) (*entity.Subchannel, error) {
	var modelSubchannel model.Subchannel
	err := r.db.WithContext(ctx).
		Where("channel_id = ? AND name = ?", channelId, name).
		First(&modelSubchannel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SubchannelToEntity(&modelSubchannel), nil
}

func (r *ConversationRepositoryImpl) CreateSubchannel(ctx context.Context, subchannel *entity.Subchannel) error {
	modelSubchannel := r.mapper.SubchannelToModel(subchannel)
	if err := r.db.WithContext(ctx).Create(modelSubchannel).Error; err != nil {
		return err
	}
	*subchannel = *r.mapper.SubchannelToEntity(modelSubchannel)
	return nil
}
