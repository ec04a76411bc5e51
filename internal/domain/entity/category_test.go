package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

func newTestCategory(t *testing.T, raw string) *CatCategory {
	t.Helper()
	name, err := valueobject.NewCategoryName(raw)
	require.NoError(t, err)
	c, err := NewCatCategory(name, valueobject.CategorySlugFromName(name), nil, 0)
	require.NoError(t, err)
	return c
}

func TestNewCatCategory(t *testing.T) {
	c := newTestCategory(t, "Điện tử")
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, CategoryStatusActive, c.Status())
	assert.True(t, c.IsActive())
	assert.True(t, c.IsLeaf())
	assert.Nil(t, c.ParentID())

	events := c.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "catalog.category.created", events[0].EventName())

	name := c.Name()
	t.Run("rejects negative sort order", func(t *testing.T) {
		_, err := NewCatCategory(name, c.Slug(), nil, -1)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects blank parent id", func(t *testing.T) {
		blank := "   "
		_, err := NewCatCategory(name, c.Slug(), &blank, 0)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("keeps a trimmed parent id", func(t *testing.T) {
		parent := " parent-1 "
		child, err := NewCatCategory(name, c.Slug(), &parent, 1)
		require.NoError(t, err)
		require.NotNil(t, child.ParentID())
		assert.Equal(t, "parent-1", *child.ParentID())
	})
}

func TestCategoryDeactivate(t *testing.T) {
	c := newTestCategory(t, "Điện tử")

	require.NoError(t, c.AddProduct("p-1"))
	err := c.Deactivate()
	require.Error(t, err)
	assert.EqualError(t, err, "category still owns products and cannot be deactivated")
	assert.True(t, c.IsActive())

	c.RemoveProduct("p-1")
	require.NoError(t, c.Deactivate())
	assert.Equal(t, CategoryStatusInactive, c.Status())

	// Inactive categories can come back.
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}

func TestCategoryDelete(t *testing.T) {
	t.Run("blocked while products remain", func(t *testing.T) {
		c := newTestCategory(t, "Điện tử")
		require.NoError(t, c.AddProduct("p-1"))
		assert.False(t, c.CanBeDeleted())

		err := c.Delete()
		require.Error(t, err)
		assert.EqualError(t, err, "category still owns products and cannot be deleted")

		c.RemoveProduct("p-1")
		assert.True(t, c.CanBeDeleted())
		require.NoError(t, c.Delete())
		assert.True(t, c.IsDeleted())
	})

	t.Run("blocked while children remain", func(t *testing.T) {
		c := newTestCategory(t, "Điện tử")
		require.NoError(t, c.AddChild("child-1"))
		assert.False(t, c.IsLeaf())

		err := c.Delete()
		require.Error(t, err)
		assert.EqualError(t, err, "category still has child categories and cannot be deleted")

		c.RemoveChild("child-1")
		require.NoError(t, c.Delete())
	})

	t.Run("deleted is terminal", func(t *testing.T) {
		c := newTestCategory(t, "Điện tử")
		require.NoError(t, c.Delete())

		require.Error(t, c.Delete())
		require.Error(t, c.Activate())
		require.Error(t, c.Deactivate())
		require.Error(t, c.AddProduct("p-1"))
		require.Error(t, c.AddChild("child-1"))
		assert.False(t, c.CanBeDeleted())
		assert.False(t, c.CanHaveChildren())
	})

	t.Run("records a deletion event", func(t *testing.T) {
		c := newTestCategory(t, "Điện tử")
		c.Events().Clear()
		require.NoError(t, c.Delete())
		events := c.Events().Drain()
		require.Len(t, events, 1)
		assert.Equal(t, "catalog.category.deleted", events[0].EventName())
	})
}

func TestCategoryChangeParent(t *testing.T) {
	c := newTestCategory(t, "Điện tử")

	self := c.ID()
	err := c.ChangeParent(&self)
	require.Error(t, err)
	assert.EqualError(t, err, "category cannot be its own parent")

	parent := "parent-1"
	require.NoError(t, c.ChangeParent(&parent))
	require.NotNil(t, c.ParentID())
	assert.Equal(t, "parent-1", *c.ParentID())

	// Same parent again is a no-op.
	require.NoError(t, c.ChangeParent(&parent))

	require.NoError(t, c.ChangeParent(nil))
	assert.Nil(t, c.ParentID())
}

func TestCategoryChildren(t *testing.T) {
	c := newTestCategory(t, "Điện tử")

	require.NoError(t, c.AddChild("child-1"))
	require.NoError(t, c.AddChild("child-1"))
	require.NoError(t, c.AddChild("child-2"))
	assert.Equal(t, []string{"child-1", "child-2"}, c.ChildIDs())

	err := c.AddChild(c.ID())
	require.Error(t, err)
	assert.EqualError(t, err, "category cannot be its own child")

	t.Run("inactive categories take no new children", func(t *testing.T) {
		leaf := newTestCategory(t, "Gia dụng")
		require.NoError(t, leaf.Deactivate())
		err := leaf.AddChild("child-1")
		require.Error(t, err)
		assert.True(t, domain.IsOperation(err))
	})
}

func TestCategorySEOAndSortOrder(t *testing.T) {
	c := newTestCategory(t, "Điện tử")

	c.UpdateSEO("  mô tả  ", " Điện tử | ShopFlow ", " danh mục điện tử ")
	assert.Equal(t, "mô tả", c.Description())
	assert.Equal(t, "Điện tử | ShopFlow", c.SeoTitle())
	assert.Equal(t, "danh mục điện tử", c.SeoDescription())

	require.NoError(t, c.ChangeSortOrder(5))
	assert.Equal(t, 5, c.SortOrder())

	err := c.ChangeSortOrder(-1)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 5, c.SortOrder())
}

func TestCategoryTranslations(t *testing.T) {
	c := newTestCategory(t, "Điện tử")

	require.NoError(t, c.UpsertTranslation(" EN ", "Electronics", "All electronics"))
	translations := c.Translations()
	require.Len(t, translations, 1)
	assert.Equal(t, "en", translations[0].Locale)
	assert.Equal(t, "Electronics", translations[0].Name)

	// Upserting the same locale replaces the copy.
	require.NoError(t, c.UpsertTranslation("en", "Consumer Electronics", "Updated"))
	translations = c.Translations()
	require.Len(t, translations, 1)
	assert.Equal(t, "Consumer Electronics", translations[0].Name)
	assert.Equal(t, "Updated", translations[0].Description)

	require.NoError(t, c.UpsertTranslation("ja", "電子機器", ""))
	assert.Len(t, c.Translations(), 2)

	require.Error(t, c.UpsertTranslation("  ", "Name", ""))
	require.Error(t, c.UpsertTranslation("fr", "   ", ""))
}

func TestCategoryRename(t *testing.T) {
	c := newTestCategory(t, "Điện tử")
	name, err := valueobject.NewCategoryName("Điện máy")
	require.NoError(t, err)
	c.Rename(name, valueobject.CategorySlugFromName(name))
	assert.Equal(t, "Điện máy", c.Name().Value())
	assert.Equal(t, "dien-may", c.Slug().Value())
}
