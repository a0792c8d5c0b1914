package service

import (
	"context"
	"sync"
	"time"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/repository/contract"
	"campus-connect-be/internal/repository/specification"
	"campus-connect-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

// memStore is the shared state behind the fake repositories. It mimics only
// as much database behavior as the services under test rely on.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	sessions     map[string]*entity.Session
	convos       map[uuid.UUID]*entity.Conversation
	channels     map[uuid.UUID]*entity.Channel      // by conversation id
	subchannels  map[uuid.UUID][]*entity.Subchannel // by channel id
	messages     []*entity.Message
	posts        []*entity.Post
	recencyBumps map[uuid.UUID]int
	recencyAt    map[uuid.UUID]time.Time // last instant passed to UpdateRecency

	recencyErr error // returned by UpdateRecency when set
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*entity.User),
		sessions:     make(map[string]*entity.Session),
		convos:       make(map[uuid.UUID]*entity.Conversation),
		channels:     make(map[uuid.UUID]*entity.Channel),
		subchannels:  make(map[uuid.UUID][]*entity.Subchannel),
		recencyBumps: make(map[uuid.UUID]int),
		recencyAt:    make(map[uuid.UUID]time.Time),
	}
}

func (s *memStore) addUser(u *entity.User) { s.users[u.Id] = u }

func (s *memStore) addConversation(c *entity.Conversation) { s.convos[c.Id] = c }

type fakeFactory struct {
	store *memStore
}

func newFakeFactory(store *memStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

// fakeUow snapshots message state on Begin so Rollback can undo writes, the
// only transactional behavior the chat service depends on.
type fakeUow struct {
	store           *memStore
	inTx            bool
	messageSnapshot []*entity.Message
	bumpsSnapshot   map[uuid.UUID]int
	atSnapshot      map[uuid.UUID]time.Time
	Committed       bool
	RolledBack      bool
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.inTx = true
	u.messageSnapshot = append([]*entity.Message(nil), u.store.messages...)
	u.bumpsSnapshot = make(map[uuid.UUID]int, len(u.store.recencyBumps))
	for k, v := range u.store.recencyBumps {
		u.bumpsSnapshot[k] = v
	}
	u.atSnapshot = make(map[uuid.UUID]time.Time, len(u.store.recencyAt))
	for k, v := range u.store.recencyAt {
		u.atSnapshot[k] = v
	}
	return nil
}

func (u *fakeUow) Commit() error {
	u.inTx = false
	u.Committed = true
	return nil
}

func (u *fakeUow) Rollback() error {
	u.inTx = false
	u.RolledBack = true
	u.store.messages = u.messageSnapshot
	u.store.recencyBumps = u.bumpsSnapshot
	u.store.recencyAt = u.atSnapshot
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{store: u.store}
}

func (u *fakeUow) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUow) PostRepository() contract.PostRepository {
	return &fakePostRepo{store: u.store}
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var matches []*entity.User
	for _, user := range r.store.users {
		if matchesUserSpecs(user, specs) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func matchesUserSpecs(user *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByRegistration:
			if user.Registration != spec.Registration {
				return false
			}
		case specification.ByEmail:
			if user.Email != spec.Email {
				return false
			}
		case specification.ByID:
			if user.Id != spec.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range spec.IDs {
				if user.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ActiveUsers:
			if user.AccessStatus != entity.AccessStatusActive {
				return false
			}
		}
	}
	return true
}

type fakeSessionRepo struct {
	store *memStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	return r.store.sessions[token], nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	delete(r.store.sessions, token)
	return nil
}

type fakeConversationRepo struct {
	store *memStore
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation, participantIds []uuid.UUID) error {
	for _, id := range participantIds {
		if user, ok := r.store.users[id]; ok {
			conversation.Participants = append(conversation.Participants, user)
		}
	}
	r.store.convos[conversation.Id] = conversation
	return nil
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	return r.store.convos[id], nil
}

func (r *fakeConversationRepo) ListForUser(ctx context.Context, userId uuid.UUID) ([]*entity.ConversationSummary, error) {
	var summaries []*entity.ConversationSummary
	for _, conversation := range r.store.convos {
		if conversation.HasParticipant(userId) {
			summaries = append(summaries, &entity.ConversationSummary{Conversation: *conversation})
		}
	}
	return summaries, nil
}

func (r *fakeConversationRepo) UpdateRecency(ctx context.Context, id uuid.UUID, at time.Time) error {
	if r.store.recencyErr != nil {
		return r.store.recencyErr
	}
	r.store.recencyBumps[id]++
	r.store.recencyAt[id] = at
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.convos, id)
	delete(r.store.channels, id)
	return nil
}

func (r *fakeConversationRepo) FindChannel(ctx context.Context, conversationId uuid.UUID) (*entity.Channel, error) {
	return r.store.channels[conversationId], nil
}

func (r *fakeConversationRepo) CreateChannel(ctx context.Context, channel *entity.Channel) error {
	r.store.channels[channel.ConversationId] = channel
	return nil
}

func (r *fakeConversationRepo) FindSubchannel(ctx context.Context, channelId uuid.UUID, name string) (*entity.Subchannel, error) {
	for _, sub := range r.store.subchannels[channelId] {
		if sub.Name == name {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) CreateSubchannel(ctx context.Context, subchannel *entity.Subchannel) error {
	r.store.subchannels[subchannel.ChannelId] = append(r.store.subchannels[subchannel.ChannelId], subchannel)
	return nil
}

type fakeMessageRepo struct {
	store *memStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAllBySubchannel(ctx context.Context, subchannelId uuid.UUID) ([]*entity.Message, error) {
	var matches []*entity.Message
	for _, msg := range r.store.messages {
		if msg.SubchannelId == subchannelId {
			matches = append(matches, msg)
		}
	}
	return matches, nil
}

func (r *fakeMessageRepo) MarkAllRead(ctx context.Context, subchannelId uuid.UUID, exceptAuthor uuid.UUID) (int64, error) {
	var updated int64
	for _, msg := range r.store.messages {
		if msg.SubchannelId != subchannelId || msg.IsRead {
			continue
		}
		if msg.AuthorId != nil && *msg.AuthorId == exceptAuthor {
			continue
		}
		msg.IsRead = true
		updated++
	}
	return updated, nil
}

type fakePostRepo struct {
	store *memStore
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.store.posts = append(r.store.posts, post)
	return nil
}

func (r *fakePostRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	return append([]*entity.Post(nil), r.store.posts...), nil
}

// fakePublisher records every payload handed to it.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.payloads...)
}
