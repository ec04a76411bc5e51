package repository

import (
	"context"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
)

// ProductRepository defines persistence for the catalog product
// aggregate. Implementations rehydrate aggregates from trusted rows
// and never run domain validation on stored data.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.CatProduct) error
	GetByID(ctx context.Context, id string) (*entity.CatProduct, error)
	GetBySlug(ctx context.Context, slug string) (*entity.CatProduct, error)
	Update(ctx context.Context, p *entity.CatProduct) error
	Delete(ctx context.Context, id string) error
}
