package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

// CategoryStatus is the lifecycle state of a catalog category.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
	CategoryStatusDeleted  CategoryStatus = "deleted"
)

// CategoryTranslation is a localized name/description owned by a category.
type CategoryTranslation struct {
	Locale      string
	Name        string
	Description string
}

// CatCategory is the catalog category aggregate. Structural invariants:
// a category cannot be its own parent, cannot be deactivated while it
// owns products, and cannot be deleted while it owns products or child
// categories. Deleted is terminal.
type CatCategory struct {
	id             string
	parentID       *string
	name           valueobject.CategoryName
	slug           valueobject.CategorySlug
	description    string
	seoTitle       string
	seoDescription string
	sortOrder      int
	status         CategoryStatus
	productIDs     []string
	childIDs       []string
	translations   []CategoryTranslation
	createdAt      time.Time
	updatedAt      time.Time
	events         domain.EventLog
}

// NewCatCategory creates an Active category and records a creation event.
func NewCatCategory(name valueobject.CategoryName, slug valueobject.CategorySlug, parentID *string, sortOrder int) (*CatCategory, error) {
	if sortOrder < 0 {
		return nil, domain.NewValidationError("sort_order", "sort order must not be negative")
	}
	now := time.Now().UTC()
	c := &CatCategory{
		id:        uuid.NewString(),
		name:      name,
		slug:      slug,
		sortOrder: sortOrder,
		status:    CategoryStatusActive,
		createdAt: now,
		updatedAt: now,
	}
	if parentID != nil {
		v := strings.TrimSpace(*parentID)
		if v == "" {
			return nil, domain.NewValidationError("parent_id", "parent id must not be blank")
		}
		c.parentID = &v
	}
	c.events.Record(CategoryCreated{CategoryID: c.id, Name: name.Value(), Slug: slug.Value(), ParentID: c.parentID, At: now})
	return c, nil
}

// RehydrateCatCategory rebuilds a category from trusted stored data,
// skipping validation and recording no event. For persistence use only.
func RehydrateCatCategory(id string, parentID *string, name valueobject.CategoryName, slug valueobject.CategorySlug, description, seoTitle, seoDescription string, sortOrder int, status CategoryStatus, productIDs, childIDs []string, translations []CategoryTranslation, createdAt, updatedAt time.Time) *CatCategory {
	return &CatCategory{
		id:             id,
		parentID:       parentID,
		name:           name,
		slug:           slug,
		description:    description,
		seoTitle:       seoTitle,
		seoDescription: seoDescription,
		sortOrder:      sortOrder,
		status:         status,
		productIDs:     productIDs,
		childIDs:       childIDs,
		translations:   translations,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *CatCategory) ID() string                     { return c.id }
func (c *CatCategory) Name() valueobject.CategoryName { return c.name }
func (c *CatCategory) Slug() valueobject.CategorySlug { return c.slug }
func (c *CatCategory) Description() string            { return c.description }
func (c *CatCategory) SeoTitle() string               { return c.seoTitle }
func (c *CatCategory) SeoDescription() string         { return c.seoDescription }
func (c *CatCategory) SortOrder() int                 { return c.sortOrder }
func (c *CatCategory) Status() CategoryStatus         { return c.status }
func (c *CatCategory) CreatedAt() time.Time           { return c.createdAt }
func (c *CatCategory) UpdatedAt() time.Time           { return c.updatedAt }

// ParentID returns a copy of the optional parent id.
func (c *CatCategory) ParentID() *string {
	if c.parentID == nil {
		return nil
	}
	v := *c.parentID
	return &v
}

func (c *CatCategory) ProductIDs() []string {
	out := make([]string, len(c.productIDs))
	copy(out, c.productIDs)
	return out
}

func (c *CatCategory) ChildIDs() []string {
	out := make([]string, len(c.childIDs))
	copy(out, c.childIDs)
	return out
}

func (c *CatCategory) Translations() []CategoryTranslation {
	out := make([]CategoryTranslation, len(c.translations))
	copy(out, c.translations)
	return out
}

// Events exposes the aggregate's event log for draining after persistence.
func (c *CatCategory) Events() *domain.EventLog { return &c.events }

func (c *CatCategory) touch() { c.updatedAt = time.Now().UTC() }

func (c *CatCategory) IsActive() bool  { return c.status == CategoryStatusActive }
func (c *CatCategory) IsDeleted() bool { return c.status == CategoryStatusDeleted }

// IsLeaf reports whether the category has no child categories.
func (c *CatCategory) IsLeaf() bool { return len(c.childIDs) == 0 }

// CanHaveChildren reports whether new children may be attached.
func (c *CatCategory) CanHaveChildren() bool { return c.status == CategoryStatusActive }

// CanBeDeleted reports whether Delete would currently succeed.
func (c *CatCategory) CanBeDeleted() bool {
	return len(c.productIDs) == 0 && len(c.childIDs) == 0 && c.status != CategoryStatusDeleted
}

// Activate re-enables an inactive category. Deleted is terminal.
func (c *CatCategory) Activate() error {
	if c.status == CategoryStatusDeleted {
		return domain.NewOperationError("deleted category cannot be activated")
	}
	c.status = CategoryStatusActive
	c.touch()
	return nil
}

// Deactivate hides the category. It fails while the category still
// owns products.
func (c *CatCategory) Deactivate() error {
	if c.status == CategoryStatusDeleted {
		return domain.NewOperationError("deleted category cannot be deactivated")
	}
	if len(c.productIDs) > 0 {
		return domain.NewOperationError("category still owns products and cannot be deactivated")
	}
	c.status = CategoryStatusInactive
	c.touch()
	return nil
}

// Delete marks the category Deleted, permanently. It fails while the
// category owns products or child categories.
func (c *CatCategory) Delete() error {
	if c.status == CategoryStatusDeleted {
		return domain.NewOperationError("category is already deleted")
	}
	if len(c.productIDs) > 0 {
		return domain.NewOperationError("category still owns products and cannot be deleted")
	}
	if len(c.childIDs) > 0 {
		return domain.NewOperationError("category still has child categories and cannot be deleted")
	}
	c.status = CategoryStatusDeleted
	c.touch()
	c.events.Record(CategoryDeleted{CategoryID: c.id, Slug: c.slug.Value(), At: c.updatedAt})
	return nil
}

// ChangeParent re-parents the category. Setting the category as its own
// parent fails; an unchanged parent is a no-op.
func (c *CatCategory) ChangeParent(newParentID *string) error {
	if newParentID != nil && *newParentID == c.id {
		return domain.NewOperationError("category cannot be its own parent")
	}
	if sameParent(c.parentID, newParentID) {
		return nil
	}
	if newParentID == nil {
		c.parentID = nil
	} else {
		v := *newParentID
		c.parentID = &v
	}
	c.touch()
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Rename changes the display name and slug together.
func (c *CatCategory) Rename(name valueobject.CategoryName, slug valueobject.CategorySlug) {
	c.name = name
	c.slug = slug
	c.touch()
}

// UpdateSEO sets the description and SEO fields.
func (c *CatCategory) UpdateSEO(description, seoTitle, seoDescription string) {
	c.description = strings.TrimSpace(description)
	c.seoTitle = strings.TrimSpace(seoTitle)
	c.seoDescription = strings.TrimSpace(seoDescription)
	c.touch()
}

// ChangeSortOrder updates the display position.
func (c *CatCategory) ChangeSortOrder(sortOrder int) error {
	if sortOrder < 0 {
		return domain.NewValidationError("sort_order", "sort order must not be negative")
	}
	c.sortOrder = sortOrder
	c.touch()
	return nil
}

// AddProduct links a product to the category, idempotently.
func (c *CatCategory) AddProduct(productID string) error {
	if c.status == CategoryStatusDeleted {
		return domain.NewOperationError("deleted category cannot own products")
	}
	for _, id := range c.productIDs {
		if id == productID {
			return nil
		}
	}
	c.productIDs = append(c.productIDs, productID)
	c.touch()
	return nil
}

// RemoveProduct unlinks a product, idempotently.
func (c *CatCategory) RemoveProduct(productID string) {
	for i, id := range c.productIDs {
		if id == productID {
			c.productIDs = append(c.productIDs[:i], c.productIDs[i+1:]...)
			c.touch()
			return
		}
	}
}

// AddChild attaches a child category. Only an active category can take
// children.
func (c *CatCategory) AddChild(childID string) error {
	if !c.CanHaveChildren() {
		return domain.NewOperationError("category is not active and cannot have children")
	}
	if childID == c.id {
		return domain.NewOperationError("category cannot be its own child")
	}
	for _, id := range c.childIDs {
		if id == childID {
			return nil
		}
	}
	c.childIDs = append(c.childIDs, childID)
	c.touch()
	return nil
}

// RemoveChild detaches a child category, idempotently.
func (c *CatCategory) RemoveChild(childID string) {
	for i, id := range c.childIDs {
		if id == childID {
			c.childIDs = append(c.childIDs[:i], c.childIDs[i+1:]...)
			c.touch()
			return
		}
	}
}

// UpsertTranslation adds or replaces the localized copy for a locale.
func (c *CatCategory) UpsertTranslation(locale, name, description string) error {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return domain.NewValidationError("locale", "locale is required")
	}
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "translated name is required")
	}
	for i := range c.translations {
		if c.translations[i].Locale == locale {
			c.translations[i].Name = name
			c.translations[i].Description = description
			c.touch()
			return nil
		}
	}
	c.translations = append(c.translations, CategoryTranslation{Locale: locale, Name: name, Description: description})
	c.touch()
	return nil
}
