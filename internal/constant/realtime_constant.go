package constant

// Realtime event type names carried in the "type" field of socket frames.
const (
	EventMessageNew   = "message:new"
	EventChatMessage  = "chat_message"
	EventAnnouncement = "announcement"
)

// DefaultSubchannelName is the subchannel every conversation starts with.
const DefaultSubchannelName = "Geral"

// MessagePublishedTopic is the in-process bus topic carrying freshly
// persisted messages to the realtime dispatcher.
const MessagePublishedTopic = "MESSAGE_PUBLISHED"

// PreviewRuneLimit caps notification previews. Runes, not bytes, so
// multi-byte text is never cut mid-character.
const PreviewRuneLimit = 50
