package implementation

import (
	"context"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/mapper"
	"campus-connect-be/internal/model"
	"campus-connect-be/internal/repository/contract"
	"campus-connect-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PostRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewPostRepository(db *gorm.DB) contract.PostRepository {
	return &PostRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *PostRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *entity.Post) error {
	modelPost := r.mapper.ToModel(post)
	if err := r.db.WithContext(ctx).Omit("Author").Create(modelPost).Error; err != nil {
		return err
	}
	post.Id = modelPost.Id
	post.CreatedAt = modelPost.CreatedAt
	return nil
}

func (r *PostRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	var modelPosts []*model.Post
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Author"), specs...)

	if err := query.Find(&modelPosts).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelPosts), nil
}
