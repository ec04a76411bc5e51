package repository

import (
	"context"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
)

// CategoryRepository defines persistence for the catalog category
// aggregate, including the ownership links (products, children) the
// aggregate's structural invariants depend on.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.CatCategory) error
	GetByID(ctx context.Context, id string) (*entity.CatCategory, error)
	GetBySlug(ctx context.Context, slug string) (*entity.CatCategory, error)
	Update(ctx context.Context, c *entity.CatCategory) error
	ListChildren(ctx context.Context, parentID string) ([]*entity.CatCategory, error)
}
