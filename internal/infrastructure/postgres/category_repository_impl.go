package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/repository"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.CatCategory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO categories (id, parent_id, name, slug, description, seo_title, seo_description, sort_order, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID(), c.ParentID(), c.Name().Value(), c.Slug().Value(), c.Description(), c.SeoTitle(), c.SeoDescription(),
		c.SortOrder(), c.Status(), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		return err
	}
	if err := r.writeTranslations(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.CatCategory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE categories
		SET parent_id = $1, name = $2, slug = $3, description = $4, seo_title = $5, seo_description = $6, sort_order = $7, status = $8, updated_at = $9
		WHERE id = $10
	`, c.ParentID(), c.Name().Value(), c.Slug().Value(), c.Description(), c.SeoTitle(), c.SeoDescription(),
		c.SortOrder(), c.Status(), c.UpdatedAt(), c.ID())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM category_translations WHERE category_id = $1`, c.ID()); err != nil {
		return err
	}
	if err := r.writeTranslations(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CategoryRepository) writeTranslations(ctx context.Context, tx pgx.Tx, c *entity.CatCategory) error {
	for _, tr := range c.Translations() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO category_translations (category_id, locale, name, description)
			VALUES ($1, $2, $3, $4)
		`, c.ID(), tr.Locale, tr.Name, tr.Description); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.CatCategory, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.CatCategory, error) {
	return r.getBy(ctx, `WHERE slug = $1`, slug)
}

func (r *CategoryRepository) getBy(ctx context.Context, where string, arg any) (*entity.CatCategory, error) {
	var (
		id, name, slug, status                string
		parentID                              *string
		description, seoTitle, seoDescription string
		sortOrder                             int
		createdAt, updatedAt                  time.Time
	)
	row := r.pool.QueryRow(ctx, `
		SELECT id, parent_id, name, slug, description, seo_title, seo_description, sort_order, status, created_at, updated_at
		FROM categories `+where, arg)
	if err := row.Scan(&id, &parentID, &name, &slug, &description, &seoTitle, &seoDescription, &sortOrder, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}

	productIDs, err := r.stringColumn(ctx, `SELECT product_id FROM product_categories WHERE category_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return nil, err
	}
	childIDs, err := r.stringColumn(ctx, `SELECT id FROM categories WHERE parent_id = $1 ORDER BY sort_order, id`, id)
	if err != nil {
		return nil, err
	}
	translations, err := r.loadTranslations(ctx, id)
	if err != nil {
		return nil, err
	}

	return entity.RehydrateCatCategory(
		id, parentID,
		valueobject.RehydrateCategoryName(name),
		valueobject.RehydrateCategorySlug(slug),
		description, seoTitle, seoDescription,
		sortOrder,
		entity.CategoryStatus(status),
		productIDs, childIDs, translations,
		createdAt, updatedAt,
	), nil
}

func (r *CategoryRepository) ListChildren(ctx context.Context, parentID string) ([]*entity.CatCategory, error) {
	ids, err := r.stringColumn(ctx, `SELECT id FROM categories WHERE parent_id = $1 ORDER BY sort_order, id`, parentID)
	if err != nil {
		return nil, err
	}
	children := make([]*entity.CatCategory, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

func (r *CategoryRepository) stringColumn(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) loadTranslations(ctx context.Context, categoryID string) ([]entity.CategoryTranslation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT locale, name, description FROM category_translations WHERE category_id = $1 ORDER BY locale
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.CategoryTranslation
	for rows.Next() {
		var tr entity.CategoryTranslation
		if err := rows.Scan(&tr.Locale, &tr.Name, &tr.Description); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
