package unitofwork

import (
	"context"

	"campus-connect-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	PostRepository() contract.PostRepository
}
