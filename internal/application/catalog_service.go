package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	repo "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/repository"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

const productCacheTTL = 10 * time.Minute

// CatalogService coordinates the product and category aggregates:
// loading, mutating, persisting, then cache invalidation, search
// indexing and event dispatch.
type CatalogService struct {
	Products        repo.ProductRepository
	Categories      repo.CategoryRepository
	Events          *EventPublisher
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProductsIndex string
	GCS             *storage.Client
	GCSBucket       string
	CompanyPrefix   string // GS1 company prefix for barcode generation
}

func NewCatalogService(products repo.ProductRepository, categories repo.CategoryRepository, events *EventPublisher, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esProductsIndex string, gcs *storage.Client, gcsBucket, companyPrefix string) *CatalogService {
	return &CatalogService{
		Products:        products,
		Categories:      categories,
		Events:          events,
		Redis:           rdb,
		Logger:          logger,
		ES:              es,
		ESProductsIndex: esProductsIndex,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		CompanyPrefix:   companyPrefix,
	}
}

func productCacheKey(id string) string { return "catalog:product:" + id }

// ---- products ----

type CreateProductInput struct {
	Name             string
	ProductType      string
	ReturnWindowDays *int
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.CatProduct, error) {
	name, err := valueobject.NewProductName(in.Name)
	if err != nil {
		return nil, err
	}
	p, err := entity.NewCatProduct(name, valueobject.ProductSlugFromName(name), in.ProductType, in.ReturnWindowDays)
	if err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.afterProductChange(ctx, p)
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.CatProduct, error) {
	p, err := s.Products.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ProductDetail serves the read side through the Redis cache.
func (s *CatalogService) ProductDetail(ctx context.Context, id string) (map[string]any, error) {
	if s.Redis != nil {
		var doc map[string]any
		if found, err := helpers.RedisGetJSON(ctx, s.Redis, productCacheKey(id), &doc); err == nil && found {
			return doc, nil
		}
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := productDoc(p)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productCacheKey(id), doc, productCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product cache write failed")
		}
	}
	return doc, nil
}

// mutateProduct loads, applies fn, persists, then refreshes the cache,
// search index and event stream.
func (s *CatalogService) mutateProduct(ctx context.Context, id string, fn func(*entity.CatProduct) error) (*entity.CatProduct, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.afterProductChange(ctx, p)
	return p, nil
}

func (s *CatalogService) afterProductChange(ctx context.Context, p *entity.CatProduct) {
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, productCacheKey(p.ID())); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID()).Warn("product cache invalidation failed")
		}
	}
	_ = s.indexProduct(ctx, p)
	s.Events.PublishAll(ctx, p.Events())
}

func (s *CatalogService) SubmitProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Submit() })
}

func (s *CatalogService) StartProductReview(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.StartReview() })
}

func (s *CatalogService) ApproveProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Approve() })
}

func (s *CatalogService) RejectProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Reject() })
}

func (s *CatalogService) ActivateProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Activate() })
}

func (s *CatalogService) DeactivateProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Deactivate() })
}

func (s *CatalogService) DiscontinueProduct(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.Discontinue() })
}

func (s *CatalogService) ReturnProductToDraft(ctx context.Context, id string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.ReturnToDraft() })
}

func (s *CatalogService) RenameProduct(ctx context.Context, id, newName string) (*entity.CatProduct, error) {
	name, err := valueobject.NewProductName(newName)
	if err != nil {
		return nil, err
	}
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error {
		p.Rename(name, valueobject.ProductSlugFromName(name))
		return nil
	})
}

func (s *CatalogService) ChangeReturnWindow(ctx context.Context, id string, days *int) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, id, func(p *entity.CatProduct) error { return p.ChangeReturnWindow(days) })
}

type AddSkuInput struct {
	Code            string   // empty means auto-generate
	OptionValues    []string // feeds SKU generation
	Sequence        int      // feeds SKU generation
	PriceAmount     string
	PriceCurrency   string
	WeightGrams     int64
	LengthMM        int
	WidthMM         int
	HeightMM        int
	Barcode         string // explicit barcode value
	Symbology       string // required with Barcode
	GenerateBarcode bool   // mint a Vietnamese EAN-13 instead
	ItemRef         int    // item reference for barcode generation
}

// AddSku builds a fully validated variant and attaches it to the
// product. SKU codes and barcodes are generated when not supplied.
func (s *CatalogService) AddSku(ctx context.Context, productID string, in AddSkuInput) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, productID, func(p *entity.CatProduct) error {
		var (
			code valueobject.SkuCode
			err  error
		)
		if in.Code != "" {
			code, err = valueobject.NewSkuCode(in.Code)
		} else {
			code, err = valueobject.GenerateSkuCode(p.Name(), in.OptionValues, in.Sequence)
		}
		if err != nil {
			return err
		}

		price, err := valueobject.MoneyFromString(in.PriceAmount, in.PriceCurrency)
		if err != nil {
			return err
		}
		weight, err := valueobject.NewWeight(in.WeightGrams)
		if err != nil {
			return err
		}
		dims, err := valueobject.NewDimensions(in.LengthMM, in.WidthMM, in.HeightMM)
		if err != nil {
			return err
		}

		sku := entity.ProductSku{Code: code, Price: price, Weight: weight, Dimensions: dims}
		switch {
		case in.GenerateBarcode:
			b, err := valueobject.GenerateVietnameseEAN13(s.CompanyPrefix, in.ItemRef)
			if err != nil {
				return err
			}
			sku.Barcode = &b
		case in.Barcode != "":
			b, err := valueobject.NewBarcode(in.Barcode, valueobject.BarcodeSymbology(in.Symbology))
			if err != nil {
				return err
			}
			sku.Barcode = &b
		}

		return p.AddSku(sku)
	})
}

func (s *CatalogService) RemoveSku(ctx context.Context, productID, skuCode string) (*entity.CatProduct, error) {
	code, err := valueobject.NewSkuCode(skuCode)
	if err != nil {
		return nil, err
	}
	return s.mutateProduct(ctx, productID, func(p *entity.CatProduct) error { return p.RemoveSku(code) })
}

func (s *CatalogService) AddReview(ctx context.Context, productID string, rating int, comment string) (*entity.CatProduct, error) {
	return s.mutateProduct(ctx, productID, func(p *entity.CatProduct) error { return p.AddReview(rating, comment) })
}

// AssignProductToCategory links both sides of the relation and persists
// them. The category side enforces that deleted categories take no
// products.
func (s *CatalogService) AssignProductToCategory(ctx context.Context, productID, categoryID string) error {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	c, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := c.AddProduct(p.ID()); err != nil {
		return err
	}
	p.AssignCategory(c.ID())
	if err := s.Categories.Update(ctx, c); err != nil {
		return err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return err
	}
	s.afterProductChange(ctx, p)
	s.Events.PublishAll(ctx, c.Events())
	return nil
}

func (s *CatalogService) UnassignProductFromCategory(ctx context.Context, productID, categoryID string) error {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	c, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	c.RemoveProduct(p.ID())
	p.UnassignCategory(c.ID())
	if err := s.Categories.Update(ctx, c); err != nil {
		return err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return err
	}
	s.afterProductChange(ctx, p)
	return nil
}

// UploadProductImage stores an image under the product's folder in GCS
// and returns its public URL.
func (s *CatalogService) UploadProductImage(ctx context.Context, productID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return "", err
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", productID, id+ext))
	return helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

// ---- search ----

func productDoc(p *entity.CatProduct) map[string]any {
	skus := make([]map[string]any, 0, len(p.Skus()))
	for _, sku := range p.Skus() {
		d := map[string]any{
			"code":         sku.Code.Value(),
			"price":        sku.Price.Amount().String(),
			"currency":     sku.Price.Currency(),
			"weight_grams": sku.Weight.Grams(),
			"dimensions":   []int{sku.Dimensions.LengthMM(), sku.Dimensions.WidthMM(), sku.Dimensions.HeightMM()},
		}
		if sku.Barcode != nil {
			d["barcode"] = sku.Barcode.Value()
			d["symbology"] = string(sku.Barcode.Symbology())
		}
		skus = append(skus, d)
	}
	doc := map[string]any{
		"id":           p.ID(),
		"name":         p.Name().Value(),
		"slug":         p.Slug().Value(),
		"product_type": p.ProductType(),
		"status":       string(p.Status()),
		"category_ids": p.CategoryIDs(),
		"skus":         skus,
		"created_at":   p.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":   p.UpdatedAt().Format(time.RFC3339Nano),
	}
	if d := p.ReturnWindowDays(); d != nil {
		doc["return_window_days"] = *d
	}
	return doc
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.CatProduct) error {
	if s.ES == nil || s.ESProductsIndex == "" {
		return nil
	}
	b, _ := json.Marshal(productDoc(p))
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID()).Warn("es index response error")
	}
	return nil
}

// SearchProducts runs a multi_match over name, slug and product type.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "slug", "product_type"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESProductsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// ---- categories ----

type CreateCategoryInput struct {
	Name      string
	ParentID  *string
	SortOrder int
}

// CreateCategory creates the category and, when parented, registers it
// on the parent's child list.
func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*entity.CatCategory, error) {
	name, err := valueobject.NewCategoryName(in.Name)
	if err != nil {
		return nil, err
	}

	var parent *entity.CatCategory
	if in.ParentID != nil {
		parent, err = s.GetCategory(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.CanHaveChildren() {
			return nil, errors.New("parent category cannot take children")
		}
	}

	c, err := entity.NewCatCategory(name, valueobject.CategorySlugFromName(name), in.ParentID, in.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	if parent != nil {
		if err := parent.AddChild(c.ID()); err == nil {
			if uErr := s.Categories.Update(ctx, parent); uErr != nil && s.Logger != nil {
				s.Logger.WithError(uErr).WithField("category_id", parent.ID()).Warn("parent child-list update failed")
			}
		}
	}
	s.Events.PublishAll(ctx, c.Events())
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.CatCategory, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.CatCategory, error) {
	c, err := s.Categories.GetBySlug(ctx, slug)
	if err != nil || c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) ListCategoryChildren(ctx context.Context, parentID string) ([]*entity.CatCategory, error) {
	if _, err := s.GetCategory(ctx, parentID); err != nil {
		return nil, err
	}
	return s.Categories.ListChildren(ctx, parentID)
}

func (s *CatalogService) mutateCategory(ctx context.Context, id string, fn func(*entity.CatCategory) error) (*entity.CatCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	s.Events.PublishAll(ctx, c.Events())
	return c, nil
}

func (s *CatalogService) ActivateCategory(ctx context.Context, id string) (*entity.CatCategory, error) {
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error { return c.Activate() })
}

func (s *CatalogService) DeactivateCategory(ctx context.Context, id string) (*entity.CatCategory, error) {
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error { return c.Deactivate() })
}

// DeleteCategory marks the category Deleted and detaches it from its
// parent's child list.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.mutateCategory(ctx, id, func(c *entity.CatCategory) error { return c.Delete() })
	if err != nil {
		return err
	}
	if pid := c.ParentID(); pid != nil {
		if parent, pErr := s.GetCategory(ctx, *pid); pErr == nil {
			parent.RemoveChild(c.ID())
			if uErr := s.Categories.Update(ctx, parent); uErr != nil && s.Logger != nil {
				s.Logger.WithError(uErr).WithField("category_id", parent.ID()).Warn("parent child-list update failed")
			}
		}
	}
	return nil
}

func (s *CatalogService) RenameCategory(ctx context.Context, id, newName string) (*entity.CatCategory, error) {
	name, err := valueobject.NewCategoryName(newName)
	if err != nil {
		return nil, err
	}
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error {
		c.Rename(name, valueobject.CategorySlugFromName(name))
		return nil
	})
}

func (s *CatalogService) UpdateCategorySEO(ctx context.Context, id, description, seoTitle, seoDescription string) (*entity.CatCategory, error) {
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error {
		c.UpdateSEO(description, seoTitle, seoDescription)
		return nil
	})
}

func (s *CatalogService) ChangeCategorySortOrder(ctx context.Context, id string, sortOrder int) (*entity.CatCategory, error) {
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error { return c.ChangeSortOrder(sortOrder) })
}

func (s *CatalogService) UpsertCategoryTranslation(ctx context.Context, id, locale, name, description string) (*entity.CatCategory, error) {
	return s.mutateCategory(ctx, id, func(c *entity.CatCategory) error {
		return c.UpsertTranslation(locale, name, description)
	})
}

// ChangeCategoryParent moves the category under a new parent, keeping
// both parents' child lists in step.
func (s *CatalogService) ChangeCategoryParent(ctx context.Context, id string, newParentID *string) (*entity.CatCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	oldParentID := c.ParentID()

	var newParent *entity.CatCategory
	if newParentID != nil {
		newParent, err = s.GetCategory(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
	}

	if err := c.ChangeParent(newParentID); err != nil {
		return nil, err
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}

	if oldParentID != nil && (newParentID == nil || *oldParentID != *newParentID) {
		if old, pErr := s.GetCategory(ctx, *oldParentID); pErr == nil {
			old.RemoveChild(c.ID())
			_ = s.Categories.Update(ctx, old)
		}
	}
	if newParent != nil {
		if aErr := newParent.AddChild(c.ID()); aErr != nil {
			return nil, aErr
		}
		if uErr := s.Categories.Update(ctx, newParent); uErr != nil {
			return nil, uErr
		}
	}
	return c, nil
}
