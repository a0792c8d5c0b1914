package mapper

import (
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/model"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}
	return &entity.Post{
		Id:         p.Id,
		Title:      p.Title,
		Content:    p.Content,
		AuthorId:   p.AuthorId,
		AuthorName: p.Author.Name,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}
	return &model.Post{
		Id:        p.Id,
		Title:     p.Title,
		Content:   p.Content,
		AuthorId:  p.AuthorId,
		CreatedAt: p.CreatedAt,
	}
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
