package repository

import (
	"context"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
)

// UserRepository defines persistence for back-office operator accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
