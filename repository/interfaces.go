package repository

import (
	"context"

	"userCatalog/models"
)

// UserRepositoryI defines operations on cached User records.
// Records are only ever inserted; there is no update or delete path.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	CreateBatch(ctx context.Context, users []*models.User) (int, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

var _ UserRepositoryI = (*UserRepository)(nil)
