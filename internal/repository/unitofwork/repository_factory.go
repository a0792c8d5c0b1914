package unitofwork

import "context"

// RepositoryFactory hands out units of work bound to a request context.
// Services hold the factory, never a *gorm.DB.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
