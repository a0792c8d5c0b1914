package websocket

import "github.com/google/uuid"

// Topic identifies a broadcast group. Conversation sockets subscribe to the
// conversation's topic, notification sockets to the user's own topic.
type Topic string

func ConversationTopic(conversationId uuid.UUID) Topic {
	return Topic("conversation:" + conversationId.String())
}

func UserTopic(userId uuid.UUID) Topic {
	return Topic("user:" + userId.String())
}
