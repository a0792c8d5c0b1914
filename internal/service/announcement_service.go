package service

import (
	"context"
	"time"

	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/repository/specification"
	"campus-connect-be/internal/repository/unitofwork"
	"campus-connect-be/pkg/events"
	pktNats "campus-connect-be/pkg/nats"

	"github.com/google/uuid"
)

type IAnnouncementService interface {
	Create(ctx context.Context, user *entity.User, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	List(ctx context.Context) ([]*dto.AnnouncementResponse, error)
}

type announcementService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAnnouncementService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAnnouncementService {
	return &announcementService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *announcementService) Create(ctx context.Context, user *entity.User, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if !user.Grants().Has(entity.CapAnnouncementCreate) {
		return nil, serverutils.Forbidden("only teachers and above can publish announcements")
	}

	post := &entity.Post{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		AuthorId:   user.Id,
		AuthorName: user.Name,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PostRepository().Create(ctx, post); err != nil {
		return nil, err
	}

	// The post is durable; fan-out rides the event bus and may lag or drop
	// if the broker is down.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.EventAnnouncementCreated,
			Data: map[string]interface{}{
				"post_id":     post.Id,
				"title":       post.Title,
				"content":     post.Content,
				"author_name": post.AuthorName,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Announcement", "Failed to publish announcement event", map[string]interface{}{"error": err.Error()})
		}
	}

	return toAnnouncementResponse(post), nil
}

func (s *announcementService) List(ctx context.Context) ([]*dto.AnnouncementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	posts, err := uow.PostRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AnnouncementResponse, len(posts))
	for i, post := range posts {
		responses[i] = toAnnouncementResponse(post)
	}
	return responses, nil
}

func toAnnouncementResponse(post *entity.Post) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		Id:         post.Id,
		Title:      post.Title,
		Content:    post.Content,
		AuthorId:   post.AuthorId,
		AuthorName: post.AuthorName,
		CreatedAt:  post.CreatedAt,
	}
}
