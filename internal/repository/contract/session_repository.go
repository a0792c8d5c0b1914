package contract

import (
	"context"

	"campus-connect-be/internal/entity"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindByToken returns (nil, nil) when no session row exists for the token.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	// Delete is idempotent: removing an already-removed token is not an error.
	Delete(ctx context.Context, token string) error
}
