package implementation

import (
	"context"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/mapper"
	"campus-connect-be/internal/model"
	"campus-connect-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(mapper.NewUserMapper()),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	modelMessage := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	authorName := message.AuthorName
	*message = *r.mapper.MessageToEntity(modelMessage)
	message.AuthorName = authorName
	return nil
}

func (r *MessageRepositoryImpl) FindAllBySubchannel(ctx context.Context, subchannelId uuid.UUID) ([]*entity.Message, error) {
	var modelMessages []*model.Message
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("subchannel_id = ?", subchannelId).
		Order("timestamp ASC, id ASC").
		Find(&modelMessages).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(modelMessages), nil
}

func (r *MessageRepositoryImpl) MarkAllRead(ctx context.Context, subchannelId uuid.UUID, exceptAuthor uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("subchannel_id = ? AND is_read = ? AND (author_id IS NULL OR author_id <> ?)", subchannelId, false, exceptAuthor).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
