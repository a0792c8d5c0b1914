package entity

import "github.com/google/uuid"

// Capability names a permission an operation requires. Every messaging
// operation declares the capability it needs and checks it through one
// code path instead of per-route role string comparisons.
type Capability string

const (
	CapConversationRead   Capability = "conversation:read"
	CapConversationWrite  Capability = "conversation:write"
	CapConversationDelete Capability = "conversation:delete"
	CapAnnouncementCreate Capability = "announcement:create"
)

type CapabilitySet map[Capability]struct{}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func (s CapabilitySet) grant(caps ...Capability) {
	for _, c := range caps {
		s[c] = struct{}{}
	}
}

var roleRank = map[UserRole]int{
	UserRoleStudent:     0,
	UserRoleTeacher:     1,
	UserRoleCoordinator: 2,
	UserRoleAdmin:       3,
}

// AtLeast reports whether r ranks at or above min.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min]
}

// Grants computes the capability set a user holds on a conversation.
// Membership is the sole source of conversation capabilities: a participant
// can read, write, and delete; everyone else holds nothing.
func (c *Conversation) Grants(userId uuid.UUID) CapabilitySet {
	set := CapabilitySet{}
	if c.HasParticipant(userId) {
		set.grant(CapConversationRead, CapConversationWrite, CapConversationDelete)
	}
	return set
}

// Grants computes the global capability set attached to a user's role.
func (u *User) Grants() CapabilitySet {
	set := CapabilitySet{}
	if u.Role.AtLeast(UserRoleTeacher) {
		set.grant(CapAnnouncementCreate)
	}
	return set
}
