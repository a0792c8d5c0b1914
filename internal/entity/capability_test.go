package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationGrants(t *testing.T) {
	member := &User{Id: uuid.New(), Name: "Member"}
	outsider := uuid.New()

	conversation := &Conversation{
		Id:           uuid.New(),
		Type:         ConversationTypeDirect,
		Participants: []*User{member, {Id: uuid.New(), Name: "Other"}},
	}

	t.Run("participant gets conversation capabilities", func(t *testing.T) {
		grants := conversation.Grants(member.Id)
		assert.True(t, grants.Has(CapConversationRead))
		assert.True(t, grants.Has(CapConversationWrite))
		assert.True(t, grants.Has(CapConversationDelete))
	})

	t.Run("non-participant gets nothing", func(t *testing.T) {
		grants := conversation.Grants(outsider)
		assert.False(t, grants.Has(CapConversationRead))
		assert.False(t, grants.Has(CapConversationWrite))
		assert.False(t, grants.Has(CapConversationDelete))
	})

	t.Run("admin without membership still gets nothing", func(t *testing.T) {
		admin := &User{Id: uuid.New(), Role: UserRoleAdmin}
		grants := conversation.Grants(admin.Id)
		assert.False(t, grants.Has(CapConversationRead))
	})
}

func TestUserGrants(t *testing.T) {
	cases := []struct {
		role        UserRole
		canAnnounce bool
	}{
		{UserRoleStudent, false},
		{UserRoleTeacher, true},
		{UserRoleCoordinator, true},
		{UserRoleAdmin, true},
	}

	for _, tc := range cases {
		user := &User{Id: uuid.New(), Role: tc.role}
		assert.Equal(t, tc.canAnnounce, user.Grants().Has(CapAnnouncementCreate), "role %s", tc.role)
	}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, UserRoleAdmin.AtLeast(UserRoleTeacher))
	assert.True(t, UserRoleTeacher.AtLeast(UserRoleTeacher))
	assert.False(t, UserRoleStudent.AtLeast(UserRoleTeacher))
	assert.True(t, UserRoleCoordinator.AtLeast(UserRoleStudent))
}
