package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedParticipants(store *memStore) (*entity.User, *entity.User) {
	ana := &entity.User{Id: uuid.New(), Registration: "20230001", Name: "Ana", Role: entity.UserRoleStudent, AccessStatus: entity.AccessStatusActive}
	carla := &entity.User{Id: uuid.New(), Registration: "19990010", Name: "Carla", Role: entity.UserRoleTeacher, AccessStatus: entity.AccessStatusActive}
	store.addUser(ana)
	store.addUser(carla)
	return ana, carla
}

func seedConversation(store *memStore, participants ...*entity.User) *entity.Conversation {
	conversation := &entity.Conversation{
		Id:           uuid.New(),
		Type:         entity.ConversationTypeDirect,
		Participants: participants,
	}
	store.addConversation(conversation)
	return conversation
}

func TestCreateConversation(t *testing.T) {
	store := newMemStore()
	ana, carla := seedParticipants(store)
	publisher := &fakePublisher{}
	svc := NewChatService(newFakeFactory(store), publisher, testLogger{})

	t.Run("two participants make a direct conversation", func(t *testing.T) {
		res, err := svc.CreateConversation(context.Background(), ana, &dto.CreateChatRequest{
			ParticipantIds: []uuid.UUID{carla.Id},
		})
		assert.NoError(t, err)
		assert.Equal(t, string(entity.ConversationTypeDirect), res.Type)
		assert.Len(t, res.Participants, 2)

		// Channel and default subchannel exist right away.
		channel := store.channels[res.Id]
		assert.NotNil(t, channel)
		subs := store.subchannels[channel.Id]
		assert.Len(t, subs, 1)
		assert.Equal(t, constant.DefaultSubchannelName, subs[0].Name)
	})

	t.Run("creator is deduplicated from participant list", func(t *testing.T) {
		res, err := svc.CreateConversation(context.Background(), ana, &dto.CreateChatRequest{
			ParticipantIds: []uuid.UUID{ana.Id, carla.Id},
		})
		assert.NoError(t, err)
		assert.Len(t, res.Participants, 2)
	})

	t.Run("unknown participant rejected", func(t *testing.T) {
		_, err := svc.CreateConversation(context.Background(), ana, &dto.CreateChatRequest{
			ParticipantIds: []uuid.UUID{uuid.New()},
		})
		var appErr *serverutils.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.KindNotFound, appErr.Kind)
	})

	t.Run("three or more participants make a group", func(t *testing.T) {
		diego := &entity.User{Id: uuid.New(), Registration: "19950003", Name: "Diego", Role: entity.UserRoleCoordinator, AccessStatus: entity.AccessStatusActive}
		store.addUser(diego)

		res, err := svc.CreateConversation(context.Background(), ana, &dto.CreateChatRequest{
			ParticipantIds: []uuid.UUID{carla.Id, diego.Id},
		})
		assert.NoError(t, err)
		assert.Equal(t, string(entity.ConversationTypeGroup), res.Type)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("publishes to dispatcher with author excluded from recipients", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		publisher := &fakePublisher{}
		svc := NewChatService(newFakeFactory(store), publisher, testLogger{})

		res, err := svc.SendMessage(context.Background(), ana, conversation.Id, &dto.SendMessageRequest{Content: "  olá  "})
		assert.NoError(t, err)
		assert.Equal(t, "olá", res.Content)
		assert.Equal(t, "Ana", res.AuthorName)
		assert.False(t, res.IsRead)
		assert.Len(t, store.messages, 1)

		// Recency carries the message's own timestamp, not a second clock read.
		assert.Equal(t, 1, store.recencyBumps[conversation.Id])
		assert.Equal(t, store.messages[0].Timestamp, store.recencyAt[conversation.Id])

		published := publisher.published()
		assert.Len(t, published, 1)
		var payload dto.MessagePublishedPayload
		assert.NoError(t, json.Unmarshal(published[0], &payload))
		assert.Equal(t, conversation.Id, payload.ChatId)
		assert.Equal(t, []uuid.UUID{carla.Id}, payload.RecipientIds)
	})

	t.Run("recency bump failure rolls the message back", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		store.recencyErr = errors.New("db down")
		publisher := &fakePublisher{}
		svc := NewChatService(newFakeFactory(store), publisher, testLogger{})

		_, err := svc.SendMessage(context.Background(), ana, conversation.Id, &dto.SendMessageRequest{Content: "olá"})
		assert.Error(t, err)
		assert.Empty(t, store.messages)
		assert.Empty(t, publisher.published())
	})

	t.Run("non-participant forbidden", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		outsider := &entity.User{Id: uuid.New(), Name: "Out", AccessStatus: entity.AccessStatusActive}
		store.addUser(outsider)
		svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

		_, err := svc.SendMessage(context.Background(), outsider, conversation.Id, &dto.SendMessageRequest{Content: "oi"})
		var appErr *serverutils.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.KindForbidden, appErr.Kind)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

		_, err := svc.SendMessage(context.Background(), ana, conversation.Id, &dto.SendMessageRequest{Content: "   "})
		var appErr *serverutils.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.KindValidation, appErr.Kind)
	})
}

func TestListMessages(t *testing.T) {
	t.Run("conversation without a channel answers empty and writes nothing", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

		res, err := svc.ListMessages(context.Background(), ana, conversation.Id)
		assert.NoError(t, err)
		assert.Empty(t, res)
		assert.Nil(t, store.channels[conversation.Id])
	})

	t.Run("returns the sent history", func(t *testing.T) {
		store := newMemStore()
		ana, carla := seedParticipants(store)
		conversation := seedConversation(store, ana, carla)
		svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

		_, err := svc.SendMessage(context.Background(), ana, conversation.Id, &dto.SendMessageRequest{Content: "oi"})
		assert.NoError(t, err)

		res, err := svc.ListMessages(context.Background(), ana, conversation.Id)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "oi", res[0].Content)
	})
}

func TestMarkRead(t *testing.T) {
	store := newMemStore()
	ana, carla := seedParticipants(store)
	conversation := seedConversation(store, ana, carla)
	svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

	// Seed traffic in both directions through the service itself.
	_, err := svc.SendMessage(context.Background(), ana, conversation.Id, &dto.SendMessageRequest{Content: "pergunta"})
	assert.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), carla, conversation.Id, &dto.SendMessageRequest{Content: "resposta 1"})
	assert.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), carla, conversation.Id, &dto.SendMessageRequest{Content: "resposta 2"})
	assert.NoError(t, err)

	t.Run("marks only messages from others", func(t *testing.T) {
		res, err := svc.MarkRead(context.Background(), ana, conversation.Id)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), res.Updated)

		// Ana's own message is untouched.
		for _, msg := range store.messages {
			if msg.AuthorId != nil && *msg.AuthorId == ana.Id {
				assert.False(t, msg.IsRead)
			} else {
				assert.True(t, msg.IsRead)
			}
		}
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		res, err := svc.MarkRead(context.Background(), ana, conversation.Id)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.Updated)
	})

	t.Run("unknown conversation not found", func(t *testing.T) {
		_, err := svc.MarkRead(context.Background(), ana, uuid.New())
		var appErr *serverutils.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.KindNotFound, appErr.Kind)
	})

	t.Run("conversation without a channel answers zero and writes nothing", func(t *testing.T) {
		empty := seedConversation(store, ana, carla)

		res, err := svc.MarkRead(context.Background(), ana, empty.Id)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.Updated)
		assert.Nil(t, store.channels[empty.Id])
	})
}

func TestSynthesizeTitle(t *testing.T) {
	ana := &entity.User{Id: uuid.New(), Name: "Ana"}
	carla := &entity.User{Id: uuid.New(), Name: "Carla"}
	diego := &entity.User{Id: uuid.New(), Name: "Diego"}

	t.Run("explicit title wins", func(t *testing.T) {
		title := "Projeto Final"
		conversation := &entity.Conversation{Title: &title, Participants: []*entity.User{ana, carla}}
		assert.Equal(t, "Projeto Final", synthesizeTitle(conversation, ana.Id))
	})

	t.Run("built from the other participants", func(t *testing.T) {
		conversation := &entity.Conversation{Participants: []*entity.User{ana, carla, diego}}
		assert.Equal(t, "Chat com Carla, Diego", synthesizeTitle(conversation, ana.Id))
	})

	t.Run("viewer alone falls back to generic", func(t *testing.T) {
		conversation := &entity.Conversation{Participants: []*entity.User{ana}}
		assert.Equal(t, "Chat", synthesizeTitle(conversation, ana.Id))
	})
}

func TestDeleteConversation(t *testing.T) {
	store := newMemStore()
	ana, carla := seedParticipants(store)
	conversation := seedConversation(store, ana, carla)
	svc := NewChatService(newFakeFactory(store), &fakePublisher{}, testLogger{})

	assert.NoError(t, svc.DeleteConversation(context.Background(), ana, conversation.Id))
	assert.NotContains(t, store.convos, conversation.Id)

	err := svc.DeleteConversation(context.Background(), ana, conversation.Id)
	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.KindNotFound, appErr.Kind)
}
