package contract

import (
	"context"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/repository/specification"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error)
}
