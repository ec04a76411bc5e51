package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/container"
	handlers "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/interface/http"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/interface/middleware"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
)

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	// Public read side, rate-limited per IP.
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/catalog/products/:id", publicLimiter, m.Handler.GetProduct)
	rg.GET("/catalog/products", publicLimiter, m.Handler.SearchProducts)
	rg.GET("/catalog/categories/:id", publicLimiter, m.Handler.GetCategory)
	rg.GET("/catalog/categories/:id/children", publicLimiter, m.Handler.ListCategoryChildren)

	// Back-office write side requires an operator session.
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/catalog/products", m.Handler.CreateProduct)
		auth.POST("/catalog/products/:id/status/:action", m.Handler.ChangeProductStatus)
		auth.PUT("/catalog/products/:id/name", m.Handler.RenameProduct)
		auth.PUT("/catalog/products/:id/return-window", m.Handler.ChangeReturnWindow)
		auth.POST("/catalog/products/:id/skus", m.Handler.AddSku)
		auth.DELETE("/catalog/products/:id/skus/:code", m.Handler.RemoveSku)
		auth.POST("/catalog/products/:id/reviews", m.Handler.AddReview)
		auth.POST("/catalog/products/:id/categories", m.Handler.AssignCategory)
		auth.DELETE("/catalog/products/:id/categories/:categoryID", m.Handler.UnassignCategory)
		auth.POST("/catalog/products/:id/images", m.Handler.UploadImage)

		auth.POST("/catalog/categories", m.Handler.CreateCategory)
		auth.POST("/catalog/categories/:id/activate", m.Handler.ActivateCategory)
		auth.POST("/catalog/categories/:id/deactivate", m.Handler.DeactivateCategory)
		auth.DELETE("/catalog/categories/:id", m.Handler.DeleteCategory)
		auth.PUT("/catalog/categories/:id/name", m.Handler.RenameCategory)
		auth.PUT("/catalog/categories/:id/seo", m.Handler.UpdateCategorySEO)
		auth.PUT("/catalog/categories/:id/sort-order", m.Handler.ChangeCategorySortOrder)
		auth.PUT("/catalog/categories/:id/parent", m.Handler.ChangeCategoryParent)
		auth.PUT("/catalog/categories/:id/translations", m.Handler.UpsertCategoryTranslation)
	}
}
