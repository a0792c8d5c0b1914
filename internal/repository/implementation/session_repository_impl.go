package implementation

import (
	"context"
	"errors"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/mapper"
	"campus-connect-be/internal/model"
	"campus-connect-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	modelSession := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(modelSession).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(modelSession)
	return nil
}

func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var modelSession model.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&modelSession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&modelSession), nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}
