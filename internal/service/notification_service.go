package service

import (
	"context"
	"fmt"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/repository/memory"
	"campus-connect-be/internal/repository/specification"
	"campus-connect-be/internal/repository/unitofwork"
	"campus-connect-be/internal/websocket"
	"campus-connect-be/pkg/events"
	pktNats "campus-connect-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type INotificationService interface {
	Start() error
}

type notificationService struct {
	subscriber     *pktNats.Subscriber
	uowFactory     unitofwork.RepositoryFactory
	recipientCache *memory.RecipientCache
	delivery       RealtimeDelivery
	logger         logger.ILogger
}

func NewNotificationService(
	subscriber *pktNats.Subscriber,
	uowFactory unitofwork.RepositoryFactory,
	recipientCache *memory.RecipientCache,
	delivery RealtimeDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		subscriber:     subscriber,
		uowFactory:     uowFactory,
		recipientCache: recipientCache,
		delivery:       delivery,
		logger:         log,
	}
}

// Start subscribes to announcement events with a durable consumer, so
// announcements published while this process was down still fan out.
func (s *notificationService) Start() error {
	subject := fmt.Sprintf("events.%s", events.EventAnnouncementCreated)
	return s.subscriber.Subscribe(subject, "announcement-fanout", s.handleAnnouncement)
}

func (s *notificationService) handleAnnouncement(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	postId, err := uuid.Parse(stringField(payload, "post_id"))
	if err != nil {
		s.logger.Error("Notification", "Announcement event with bad post_id", map[string]interface{}{"error": err.Error()})
		// Unparseable events stay unparseable, do not retry.
		return nil
	}

	recipients, err := s.activeRecipients(ctx)
	if err != nil {
		return err
	}

	announcement := dto.AnnouncementEvent{
		Type:       constant.EventAnnouncement,
		PostId:     postId,
		Title:      stringField(payload, "title"),
		Content:    stringField(payload, "content"),
		AuthorName: stringField(payload, "author_name"),
		Timestamp:  event.Timestamp(),
	}
	for _, userId := range recipients {
		s.delivery.Broadcast(websocket.UserTopic(userId), announcement)
	}

	s.logger.Info("Notification", "Announcement fanned out", map[string]interface{}{
		"post_id":    postId,
		"recipients": len(recipients),
	})
	return nil
}

// activeRecipients resolves the ids of all active users, cached for a short
// window so a burst of announcements costs one query.
func (s *notificationService) activeRecipients(ctx context.Context) ([]uuid.UUID, error) {
	if cached, ok := s.recipientCache.Get(); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.ActiveUsers{})
	if err != nil {
		return nil, err
	}

	ids := lo.Map(users, func(u *entity.User, _ int) uuid.UUID {
		return u.Id
	})
	s.recipientCache.Save(ids)
	return ids, nil
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
