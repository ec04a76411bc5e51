package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

// ProductStatus is the lifecycle state of a catalog product.
type ProductStatus string

const (
	ProductDraft        ProductStatus = "draft"
	ProductPending      ProductStatus = "pending"
	ProductUnderReview  ProductStatus = "under_review"
	ProductActive       ProductStatus = "active"
	ProductInactive     ProductStatus = "inactive"
	ProductDiscontinued ProductStatus = "discontinued"
	ProductRejected     ProductStatus = "rejected"
)

// productTransitions is the only source of truth for legal status
// changes. Callers must go through the named mutators; nothing outside
// the aggregate re-validates transitions.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductDraft:       {ProductPending},
	ProductPending:     {ProductUnderReview},
	ProductUnderReview: {ProductActive, ProductRejected},
	ProductActive:      {ProductInactive, ProductDiscontinued},
	ProductInactive:    {ProductActive},
	ProductRejected:    {ProductDraft},
}

// ProductSku is a sellable variant owned by a product.
type ProductSku struct {
	Code       valueobject.SkuCode
	Price      valueobject.Money
	Weight     valueobject.Weight
	Dimensions valueobject.Dimensions
	Barcode    *valueobject.Barcode
}

// ProductReview is a buyer review owned by a product.
type ProductReview struct {
	ID        string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// CatProduct is the catalog product aggregate. All mutation goes
// through named methods that re-validate invariants; a successful
// mutation refreshes the modification timestamp.
type CatProduct struct {
	id               string
	name             valueobject.ProductName
	slug             valueobject.ProductSlug
	productType      string
	status           ProductStatus
	returnWindowDays *int
	createdAt        time.Time
	updatedAt        time.Time
	skus             []ProductSku
	categoryIDs      []string
	reviews          []ProductReview
	events           domain.EventLog
}

// NewCatProduct creates a Draft product and records a creation event.
// returnWindowDays is optional; when present it must not be negative.
func NewCatProduct(name valueobject.ProductName, slug valueobject.ProductSlug, productType string, returnWindowDays *int) (*CatProduct, error) {
	productType = strings.TrimSpace(productType)
	if productType == "" {
		return nil, domain.NewValidationError("product_type", "product type is required")
	}
	if returnWindowDays != nil && *returnWindowDays < 0 {
		return nil, domain.NewValidationError("return_window_days", "return window must not be negative")
	}
	now := time.Now().UTC()
	p := &CatProduct{
		id:          uuid.NewString(),
		name:        name,
		slug:        slug,
		productType: productType,
		status:      ProductDraft,
		createdAt:   now,
		updatedAt:   now,
	}
	if returnWindowDays != nil {
		v := *returnWindowDays
		p.returnWindowDays = &v
	}
	p.events.Record(ProductCreated{ProductID: p.id, Name: name.Value(), Slug: slug.Value(), At: now})
	return p, nil
}

// RehydrateCatProduct rebuilds a product from trusted stored data,
// skipping validation and recording no event. For persistence use only.
func RehydrateCatProduct(id string, name valueobject.ProductName, slug valueobject.ProductSlug, productType string, status ProductStatus, returnWindowDays *int, createdAt, updatedAt time.Time, skus []ProductSku, categoryIDs []string, reviews []ProductReview) *CatProduct {
	return &CatProduct{
		id:               id,
		name:             name,
		slug:             slug,
		productType:      productType,
		status:           status,
		returnWindowDays: returnWindowDays,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		skus:             skus,
		categoryIDs:      categoryIDs,
		reviews:          reviews,
	}
}

func (p *CatProduct) ID() string                    { return p.id }
func (p *CatProduct) Name() valueobject.ProductName { return p.name }
func (p *CatProduct) Slug() valueobject.ProductSlug { return p.slug }
func (p *CatProduct) ProductType() string           { return p.productType }
func (p *CatProduct) Status() ProductStatus         { return p.status }
func (p *CatProduct) CreatedAt() time.Time          { return p.createdAt }
func (p *CatProduct) UpdatedAt() time.Time          { return p.updatedAt }

// ReturnWindowDays returns a copy of the optional return window.
func (p *CatProduct) ReturnWindowDays() *int {
	if p.returnWindowDays == nil {
		return nil
	}
	v := *p.returnWindowDays
	return &v
}

func (p *CatProduct) Skus() []ProductSku {
	out := make([]ProductSku, len(p.skus))
	copy(out, p.skus)
	return out
}

func (p *CatProduct) CategoryIDs() []string {
	out := make([]string, len(p.categoryIDs))
	copy(out, p.categoryIDs)
	return out
}

func (p *CatProduct) Reviews() []ProductReview {
	out := make([]ProductReview, len(p.reviews))
	copy(out, p.reviews)
	return out
}

// Events exposes the aggregate's event log for draining after persistence.
func (p *CatProduct) Events() *domain.EventLog { return &p.events }

func (p *CatProduct) touch() { p.updatedAt = time.Now().UTC() }

func (p *CatProduct) canTransition(dst ProductStatus) bool {
	for _, allowed := range productTransitions[p.status] {
		if allowed == dst {
			return true
		}
	}
	return false
}

// transitionTo applies a status change through the transition table.
// Status changes record no events; callers needing side effects wrap
// the mutation.
func (p *CatProduct) transitionTo(dst ProductStatus) error {
	if p.status == ProductDiscontinued && dst == ProductActive {
		return domain.NewOperationError("discontinued product cannot be reactivated")
	}
	if !p.canTransition(dst) {
		return domain.NewOperationError("illegal product status transition from %s to %s", p.status, dst)
	}
	p.status = dst
	p.touch()
	return nil
}

// Submit moves a draft into the approval pipeline.
func (p *CatProduct) Submit() error { return p.transitionTo(ProductPending) }

// StartReview picks a pending product up for review.
func (p *CatProduct) StartReview() error { return p.transitionTo(ProductUnderReview) }

// Approve publishes a reviewed product.
func (p *CatProduct) Approve() error { return p.transitionTo(ProductActive) }

// Reject turns a reviewed product down.
func (p *CatProduct) Reject() error { return p.transitionTo(ProductRejected) }

// Activate brings an inactive product back on sale.
func (p *CatProduct) Activate() error { return p.transitionTo(ProductActive) }

// Deactivate takes an active product off sale, reversibly.
func (p *CatProduct) Deactivate() error { return p.transitionTo(ProductInactive) }

// Discontinue retires an active product for good.
func (p *CatProduct) Discontinue() error { return p.transitionTo(ProductDiscontinued) }

// ReturnToDraft sends a rejected product back for rework.
func (p *CatProduct) ReturnToDraft() error { return p.transitionTo(ProductDraft) }

// Rename changes the display name and slug together.
func (p *CatProduct) Rename(name valueobject.ProductName, slug valueobject.ProductSlug) {
	p.name = name
	p.slug = slug
	p.touch()
}

// ChangeReturnWindow sets or clears the return window in days.
func (p *CatProduct) ChangeReturnWindow(days *int) error {
	if days != nil && *days < 0 {
		return domain.NewValidationError("return_window_days", "return window must not be negative")
	}
	if days == nil {
		p.returnWindowDays = nil
	} else {
		v := *days
		p.returnWindowDays = &v
	}
	p.touch()
	return nil
}

// AddSku attaches a variant; SKU codes must be unique per product.
func (p *CatProduct) AddSku(sku ProductSku) error {
	for _, existing := range p.skus {
		if existing.Code.Equal(sku.Code) {
			return domain.NewOperationError("sku %s already exists on this product", sku.Code.Value())
		}
	}
	p.skus = append(p.skus, sku)
	p.touch()
	return nil
}

// RemoveSku detaches a variant by code.
func (p *CatProduct) RemoveSku(code valueobject.SkuCode) error {
	for i, existing := range p.skus {
		if existing.Code.Equal(code) {
			p.skus = append(p.skus[:i], p.skus[i+1:]...)
			p.touch()
			return nil
		}
	}
	return domain.NewOperationError("sku %s does not exist on this product", code.Value())
}

// AssignCategory links the product to a category, idempotently.
func (p *CatProduct) AssignCategory(categoryID string) {
	for _, id := range p.categoryIDs {
		if id == categoryID {
			return
		}
	}
	p.categoryIDs = append(p.categoryIDs, categoryID)
	p.touch()
}

// UnassignCategory removes a category link, idempotently.
func (p *CatProduct) UnassignCategory(categoryID string) {
	for i, id := range p.categoryIDs {
		if id == categoryID {
			p.categoryIDs = append(p.categoryIDs[:i], p.categoryIDs[i+1:]...)
			p.touch()
			return
		}
	}
}

// AddReview records a buyer review with a 1-5 rating.
func (p *CatProduct) AddReview(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return domain.NewValidationError("rating", "rating must be between 1 and 5")
	}
	p.reviews = append(p.reviews, ProductReview{
		ID:        uuid.NewString(),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now().UTC(),
	})
	p.touch()
	return nil
}
