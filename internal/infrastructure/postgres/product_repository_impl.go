package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/repository"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

var errNotFound = errors.New("not found")

// ErrNotFound reports whether err is the repository's not-found sentinel.
func ErrNotFound(err error) bool { return errors.Is(err, errNotFound) }

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.CatProduct) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, slug, product_type, status, return_window_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID(), p.Name().Value(), p.Slug().Value(), p.ProductType(), p.Status(), p.ReturnWindowDays(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		return err
	}
	if err := r.writeOwned(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.CatProduct) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE products
		SET name = $1, slug = $2, product_type = $3, status = $4, return_window_days = $5, updated_at = $6
		WHERE id = $7
	`, p.Name().Value(), p.Slug().Value(), p.ProductType(), p.Status(), p.ReturnWindowDays(), p.UpdatedAt(), p.ID())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	// Owned collections are replaced wholesale; the aggregate is the
	// unit of consistency.
	for _, q := range []string{
		`DELETE FROM product_skus WHERE product_id = $1`,
		`DELETE FROM product_categories WHERE product_id = $1`,
		`DELETE FROM product_reviews WHERE product_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, p.ID()); err != nil {
			return err
		}
	}
	if err := r.writeOwned(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) writeOwned(ctx context.Context, tx pgx.Tx, p *entity.CatProduct) error {
	for _, sku := range p.Skus() {
		var barcode, symbology *string
		if sku.Barcode != nil {
			v := sku.Barcode.Value()
			s := string(sku.Barcode.Symbology())
			barcode, symbology = &v, &s
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO product_skus (product_id, code, price_amount, price_currency, weight_grams, length_mm, width_mm, height_mm, barcode, barcode_symbology)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, p.ID(), sku.Code.Value(), sku.Price.Amount(), sku.Price.Currency(), sku.Weight.Grams(),
			sku.Dimensions.LengthMM(), sku.Dimensions.WidthMM(), sku.Dimensions.HeightMM(), barcode, symbology)
		if err != nil {
			return err
		}
	}
	for _, catID := range p.CategoryIDs() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, p.ID(), catID); err != nil {
			return err
		}
	}
	for _, rv := range p.Reviews() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_reviews (id, product_id, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, rv.ID, p.ID(), rv.Rating, rv.Comment, rv.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.CatProduct, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.CatProduct, error) {
	return r.getBy(ctx, `WHERE slug = $1`, slug)
}

func (r *ProductRepository) getBy(ctx context.Context, where string, arg any) (*entity.CatProduct, error) {
	var (
		id, name, slug, productType, status string
		returnWindowDays                    *int
		createdAt, updatedAt                time.Time
	)
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, product_type, status, return_window_days, created_at, updated_at
		FROM products `+where, arg)
	if err := row.Scan(&id, &name, &slug, &productType, &status, &returnWindowDays, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}

	skus, err := r.loadSkus(ctx, id)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := r.loadCategoryIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := r.loadReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	return entity.RehydrateCatProduct(
		id,
		valueobject.RehydrateProductName(name),
		valueobject.RehydrateProductSlug(slug),
		productType,
		entity.ProductStatus(status),
		returnWindowDays,
		createdAt, updatedAt,
		skus, categoryIDs, reviews,
	), nil
}

func (r *ProductRepository) loadSkus(ctx context.Context, productID string) ([]entity.ProductSku, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, price_amount, price_currency, weight_grams, length_mm, width_mm, height_mm, barcode, barcode_symbology
		FROM product_skus WHERE product_id = $1 ORDER BY code
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skus []entity.ProductSku
	for rows.Next() {
		var (
			code, currency        string
			amount                decimal.Decimal
			grams                 int64
			length, width, height int
			barcode, symbology    *string
		)
		if err := rows.Scan(&code, &amount, &currency, &grams, &length, &width, &height, &barcode, &symbology); err != nil {
			return nil, err
		}
		sku := entity.ProductSku{
			Code:       valueobject.RehydrateSkuCode(code),
			Price:      valueobject.RehydrateMoney(amount, currency),
			Weight:     valueobject.RehydrateWeight(grams),
			Dimensions: valueobject.RehydrateDimensions(length, width, height),
		}
		if barcode != nil && symbology != nil {
			b := valueobject.RehydrateBarcode(*barcode, valueobject.BarcodeSymbology(*symbology))
			sku.Barcode = &b
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

func (r *ProductRepository) loadCategoryIDs(ctx context.Context, productID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category_id FROM product_categories WHERE product_id = $1 ORDER BY category_id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ProductRepository) loadReviews(ctx context.Context, productID string) ([]entity.ProductReview, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, rating, comment, created_at FROM product_reviews WHERE product_id = $1 ORDER BY created_at
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.ProductReview
	for rows.Next() {
		var rv entity.ProductReview
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
