package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/repository/specification"
	"campus-connect-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	ListConversations(ctx context.Context, user *entity.User) ([]*dto.ChatResponse, error)
	CreateConversation(ctx context.Context, user *entity.User, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	ListMessages(ctx context.Context, user *entity.User, chatId uuid.UUID) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkRead(ctx context.Context, user *entity.User, chatId uuid.UUID) (*dto.MarkReadResponse, error)
	DeleteConversation(ctx context.Context, user *entity.User, chatId uuid.UUID) error
	Authorize(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, capability entity.Capability) (*entity.Conversation, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

// Authorize loads the conversation and checks the user holds the capability
// on it. NotFound for a missing conversation, Forbidden for a real one the
// user is not allowed to touch.
func (c *chatService) Authorize(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, capability entity.Capability) (*entity.Conversation, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, chatId)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NotFound("conversation not found")
	}
	if !conversation.Grants(userId).Has(capability) {
		return nil, serverutils.Forbidden("not a participant of this conversation")
	}
	return conversation, nil
}

func (c *chatService) ListConversations(ctx context.Context, user *entity.User) ([]*dto.ChatResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	summaries, err := uow.ConversationRepository().ListForUser(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = toChatResponse(&summary.Conversation, summary.LastMessage, user.Id)
	}
	return responses, nil
}

func (c *chatService) CreateConversation(ctx context.Context, user *entity.User, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	participantIds := lo.Uniq(append(req.ParticipantIds, user.Id))

	uow := c.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: participantIds})
	if err != nil {
		return nil, err
	}
	if len(users) != len(participantIds) {
		return nil, serverutils.NotFound("one or more participants do not exist")
	}

	conversationType := entity.ConversationTypeGroup
	if len(participantIds) == 2 {
		conversationType = entity.ConversationTypeDirect
	}

	conversation := &entity.Conversation{
		Id:    uuid.New(),
		Title: req.Title,
		Type:  conversationType,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.ConversationRepository().Create(ctx, conversation, participantIds); err != nil {
		uow.Rollback()
		return nil, err
	}

	channel := &entity.Channel{
		Id:             uuid.New(),
		Name:           fmt.Sprintf("Channel-%s", conversation.Id),
		ConversationId: conversation.Id,
	}
	if err := uow.ConversationRepository().CreateChannel(ctx, channel); err != nil {
		uow.Rollback()
		return nil, err
	}

	subchannel := &entity.Subchannel{
		Id:        uuid.New(),
		Name:      constant.DefaultSubchannelName,
		ChannelId: channel.Id,
	}
	if err := uow.ConversationRepository().CreateSubchannel(ctx, subchannel); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toChatResponse(conversation, nil, user.Id), nil
}

func (c *chatService) ListMessages(ctx context.Context, user *entity.User, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
	if _, err := c.Authorize(ctx, user.Id, chatId, entity.CapConversationRead); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	subchannel, err := c.findDefaultSubchannel(ctx, uow, chatId)
	if err != nil {
		return nil, err
	}
	if subchannel == nil {
		return []*dto.MessageResponse{}, nil
	}

	messages, err := uow.MessageRepository().FindAllBySubchannel(ctx, subchannel.Id)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = toMessageResponse(msg)
	}
	return responses, nil
}

func (c *chatService) SendMessage(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	conversation, err := c.Authorize(ctx, user.Id, chatId, entity.CapConversationWrite)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, serverutils.Validation("message content must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	subchannel, err := c.ensureSubchannel(ctx, uow, chatId)
	if err != nil {
		return nil, err
	}

	authorId := user.Id
	msg := &entity.Message{
		Id:           uuid.New(),
		Content:      content,
		SubchannelId: subchannel.Id,
		AuthorId:     &authorId,
		AuthorName:   user.Name,
		Timestamp:    time.Now().UTC(),
	}

	// Message persistence and the recency bump commit or fail together.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.ConversationRepository().UpdateRecency(ctx, chatId, msg.Timestamp); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishMessage(ctx, conversation, msg, user)

	return toMessageResponse(msg), nil
}

// publishMessage hands the committed message to the realtime dispatcher.
// Delivery is best effort; the message is already durable.
func (c *chatService) publishMessage(ctx context.Context, conversation *entity.Conversation, msg *entity.Message, author *entity.User) {
	recipients := lo.FilterMap(conversation.Participants, func(p *entity.User, _ int) (uuid.UUID, bool) {
		return p.Id, p.Id != author.Id
	})

	payload := dto.MessagePublishedPayload{
		ChatId:       conversation.Id,
		MessageId:    msg.Id,
		Content:      msg.Content,
		AuthorId:     author.Id,
		AuthorName:   author.Name,
		Timestamp:    msg.Timestamp,
		RecipientIds: recipients,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("Chat", "Failed to marshal realtime payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.publisherService.Publish(ctx, data); err != nil {
		c.logger.Warn("Chat", "Failed to publish message to dispatcher", map[string]interface{}{"error": err.Error()})
	}
}

func (c *chatService) MarkRead(ctx context.Context, user *entity.User, chatId uuid.UUID) (*dto.MarkReadResponse, error) {
	if _, err := c.Authorize(ctx, user.Id, chatId, entity.CapConversationRead); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	subchannel, err := c.findDefaultSubchannel(ctx, uow, chatId)
	if err != nil {
		return nil, err
	}
	if subchannel == nil {
		return &dto.MarkReadResponse{Updated: 0}, nil
	}

	updated, err := uow.MessageRepository().MarkAllRead(ctx, subchannel.Id, user.Id)
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadResponse{Updated: updated}, nil
}

func (c *chatService) DeleteConversation(ctx context.Context, user *entity.User, chatId uuid.UUID) error {
	if _, err := c.Authorize(ctx, user.Id, chatId, entity.CapConversationDelete); err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	// Channel, subchannels and messages go with it via FK cascade.
	return uow.ConversationRepository().Delete(ctx, chatId)
}

// findDefaultSubchannel walks conversation -> channel -> default subchannel
// without writing anything. (nil, nil) when any link is missing, so read
// paths can answer empty instead of creating rows.
func (c *chatService) findDefaultSubchannel(ctx context.Context, uow unitofwork.UnitOfWork, chatId uuid.UUID) (*entity.Subchannel, error) {
	repo := uow.ConversationRepository()

	channel, err := repo.FindChannel(ctx, chatId)
	if err != nil || channel == nil {
		return nil, err
	}
	return repo.FindSubchannel(ctx, channel.Id, constant.DefaultSubchannelName)
}

// ensureSubchannel walks conversation -> channel -> default subchannel,
// creating the missing links. Conversations imported from older data may
// lack them; the send path self-heals instead of failing.
func (c *chatService) ensureSubchannel(ctx context.Context, uow unitofwork.UnitOfWork, chatId uuid.UUID) (*entity.Subchannel, error) {
	repo := uow.ConversationRepository()

	channel, err := repo.FindChannel(ctx, chatId)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		channel = &entity.Channel{
			Id:             uuid.New(),
			Name:           fmt.Sprintf("Channel-%s", chatId),
			ConversationId: chatId,
		}
		if err := repo.CreateChannel(ctx, channel); err != nil {
			return nil, err
		}
	}

	subchannel, err := repo.FindSubchannel(ctx, channel.Id, constant.DefaultSubchannelName)
	if err != nil {
		return nil, err
	}
	if subchannel == nil {
		subchannel = &entity.Subchannel{
			Id:        uuid.New(),
			Name:      constant.DefaultSubchannelName,
			ChannelId: channel.Id,
		}
		if err := repo.CreateSubchannel(ctx, subchannel); err != nil {
			return nil, err
		}
	}

	return subchannel, nil
}

// synthesizeTitle builds the display title for an untitled conversation from
// the names of the other participants.
func synthesizeTitle(conversation *entity.Conversation, viewerId uuid.UUID) string {
	if conversation.Title != nil && *conversation.Title != "" {
		return *conversation.Title
	}
	names := lo.FilterMap(conversation.Participants, func(p *entity.User, _ int) (string, bool) {
		return p.Name, p.Id != viewerId
	})
	if len(names) == 0 {
		return "Chat"
	}
	return "Chat com " + strings.Join(names, ", ")
}

func toChatResponse(conversation *entity.Conversation, last *entity.LastMessage, viewerId uuid.UUID) *dto.ChatResponse {
	participants := lo.Map(conversation.Participants, func(p *entity.User, _ int) dto.ParticipantDTO {
		return dto.ParticipantDTO{
			Id:   p.Id,
			Name: p.Name,
			Role: string(p.Role),
		}
	})

	resp := &dto.ChatResponse{
		Id:           conversation.Id,
		Title:        synthesizeTitle(conversation, viewerId),
		Type:         string(conversation.Type),
		Participants: participants,
		CreatedAt:    conversation.CreatedAt,
		UpdatedAt:    conversation.UpdatedAt,
	}
	if last != nil {
		resp.LastMessage = &dto.LastMessageDTO{
			Id:         last.Id,
			Content:    last.Content,
			AuthorId:   last.AuthorId,
			AuthorName: last.AuthorName,
			Timestamp:  last.Timestamp,
			IsRead:     last.IsRead,
		}
	}
	return resp
}

func toMessageResponse(msg *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:         msg.Id,
		Content:    msg.Content,
		AuthorId:   msg.AuthorId,
		AuthorName: msg.AuthorName,
		Timestamp:  msg.Timestamp,
		IsRead:     msg.IsRead,
	}
}
