package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

func newTestProduct(t *testing.T) *CatProduct {
	t.Helper()
	name, err := valueobject.NewProductName("Điện thoại ShopFlow One")
	require.NoError(t, err)
	p, err := NewCatProduct(name, valueobject.ProductSlugFromName(name), "physical", nil)
	require.NoError(t, err)
	return p
}

func productAt(t *testing.T, status ProductStatus) *CatProduct {
	t.Helper()
	name, err := valueobject.NewProductName("Điện thoại ShopFlow One")
	require.NoError(t, err)
	now := time.Now().UTC()
	return RehydrateCatProduct("p-1", name, valueobject.ProductSlugFromName(name), "physical", status, nil, now, now, nil, nil, nil)
}

func TestNewCatProduct(t *testing.T) {
	p := newTestProduct(t)
	assert.NotEmpty(t, p.ID())
	assert.Equal(t, ProductDraft, p.Status())
	assert.Equal(t, "physical", p.ProductType())
	assert.Nil(t, p.ReturnWindowDays())

	events := p.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "catalog.product.created", events[0].EventName())

	name := p.Name()
	_, err := NewCatProduct(name, valueobject.ProductSlugFromName(name), "   ", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	negative := -1
	_, err = NewCatProduct(name, valueobject.ProductSlugFromName(name), "physical", &negative)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestProductStatusTransitionTable(t *testing.T) {
	statuses := []ProductStatus{
		ProductDraft, ProductPending, ProductUnderReview,
		ProductActive, ProductInactive, ProductDiscontinued, ProductRejected,
	}
	allowed := map[ProductStatus]map[ProductStatus]bool{
		ProductDraft:       {ProductPending: true},
		ProductPending:     {ProductUnderReview: true},
		ProductUnderReview: {ProductActive: true, ProductRejected: true},
		ProductActive:      {ProductInactive: true, ProductDiscontinued: true},
		ProductInactive:    {ProductActive: true},
		ProductRejected:    {ProductDraft: true},
	}
	mutators := map[ProductStatus]func(*CatProduct) error{
		ProductPending:      (*CatProduct).Submit,
		ProductUnderReview:  (*CatProduct).StartReview,
		ProductActive:       (*CatProduct).Approve,
		ProductRejected:     (*CatProduct).Reject,
		ProductInactive:     (*CatProduct).Deactivate,
		ProductDiscontinued: (*CatProduct).Discontinue,
		ProductDraft:        (*CatProduct).ReturnToDraft,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				p := productAt(t, from)
				err := mutators[to](p)
				if allowed[from][to] {
					require.NoError(t, err)
					assert.Equal(t, to, p.Status())
					return
				}
				require.Error(t, err)
				assert.True(t, domain.IsOperation(err))
				assert.Equal(t, from, p.Status())
			})
		}
	}
}

func TestProductTransitionEdgeCases(t *testing.T) {
	t.Run("draft cannot be activated directly", func(t *testing.T) {
		p := newTestProduct(t)
		require.Error(t, p.Activate())
		assert.Equal(t, ProductDraft, p.Status())
	})

	t.Run("discontinued is terminal with a dedicated message", func(t *testing.T) {
		p := productAt(t, ProductDiscontinued)
		err := p.Activate()
		require.Error(t, err)
		assert.EqualError(t, err, "discontinued product cannot be reactivated")
	})

	t.Run("full happy path through the pipeline", func(t *testing.T) {
		p := newTestProduct(t)
		require.NoError(t, p.Submit())
		require.NoError(t, p.StartReview())
		require.NoError(t, p.Approve())
		require.NoError(t, p.Deactivate())
		require.NoError(t, p.Activate())
		require.NoError(t, p.Discontinue())
		assert.Equal(t, ProductDiscontinued, p.Status())
	})

	t.Run("rejected products can be reworked", func(t *testing.T) {
		p := newTestProduct(t)
		require.NoError(t, p.Submit())
		require.NoError(t, p.StartReview())
		require.NoError(t, p.Reject())
		require.NoError(t, p.ReturnToDraft())
		assert.Equal(t, ProductDraft, p.Status())
		require.NoError(t, p.Submit())
	})
}

func TestProductRenameAndReturnWindow(t *testing.T) {
	p := newTestProduct(t)

	newName, err := valueobject.NewProductName("Điện thoại ShopFlow Two")
	require.NoError(t, err)
	p.Rename(newName, valueobject.ProductSlugFromName(newName))
	assert.Equal(t, "Điện thoại ShopFlow Two", p.Name().Value())
	assert.Equal(t, "dien-thoai-shopflow-two", p.Slug().Value())

	days := 14
	require.NoError(t, p.ChangeReturnWindow(&days))
	require.NotNil(t, p.ReturnWindowDays())
	assert.Equal(t, 14, *p.ReturnWindowDays())

	// The getter hands out a copy.
	*p.ReturnWindowDays() = 99
	assert.Equal(t, 14, *p.ReturnWindowDays())

	negative := -1
	err = p.ChangeReturnWindow(&negative)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 14, *p.ReturnWindowDays())

	require.NoError(t, p.ChangeReturnWindow(nil))
	assert.Nil(t, p.ReturnWindowDays())
}

func TestProductSkus(t *testing.T) {
	p := newTestProduct(t)

	code, err := valueobject.GenerateSkuCode(p.Name(), []string{"black"}, 1)
	require.NoError(t, err)
	price, err := valueobject.MoneyFromString("5990000", "VND")
	require.NoError(t, err)
	weight, err := valueobject.NewWeight(350)
	require.NoError(t, err)
	dims, err := valueobject.NewDimensions(160, 75, 9)
	require.NoError(t, err)
	sku := ProductSku{Code: code, Price: price, Weight: weight, Dimensions: dims}

	require.NoError(t, p.AddSku(sku))
	require.Len(t, p.Skus(), 1)

	t.Run("duplicate codes are rejected", func(t *testing.T) {
		err := p.AddSku(sku)
		require.Error(t, err)
		assert.True(t, domain.IsOperation(err))
		assert.Len(t, p.Skus(), 1)
	})

	t.Run("remove by code", func(t *testing.T) {
		require.NoError(t, p.RemoveSku(code))
		assert.Empty(t, p.Skus())

		err := p.RemoveSku(code)
		require.Error(t, err)
		assert.True(t, domain.IsOperation(err))
	})
}

func TestProductCategoryLinks(t *testing.T) {
	p := newTestProduct(t)

	p.AssignCategory("cat-1")
	p.AssignCategory("cat-1")
	p.AssignCategory("cat-2")
	assert.Equal(t, []string{"cat-1", "cat-2"}, p.CategoryIDs())

	p.UnassignCategory("cat-1")
	assert.Equal(t, []string{"cat-2"}, p.CategoryIDs())

	// Unassigning an unknown category is a no-op.
	p.UnassignCategory("cat-9")
	assert.Equal(t, []string{"cat-2"}, p.CategoryIDs())
}

func TestProductReviews(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.AddReview(5, "  rất tốt  "))
	reviews := p.Reviews()
	require.Len(t, reviews, 1)
	assert.NotEmpty(t, reviews[0].ID)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "rất tốt", reviews[0].Comment)

	for _, rating := range []int{0, 6, -1} {
		err := p.AddReview(rating, "x")
		require.Error(t, err, rating)
		assert.True(t, domain.IsValidation(err))
	}
	assert.Len(t, p.Reviews(), 1)
}
