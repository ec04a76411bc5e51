package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/application"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/response"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/validation"
)

type CatalogHandler struct {
	Svc    *app.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *app.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

// writeDomainErr maps domain failures onto HTTP statuses: invalid
// input is 400 with the offending field, an illegal operation is 409,
// a missing aggregate is 404.
func (h *CatalogHandler) writeDomainErr(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		ve := domain.AsValidation(err)
		response.Fail(c, http.StatusBadRequest, "invalid input", gin.H{ve.Field: ve.Message})
	case domain.IsOperation(err):
		response.Fail(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, app.ErrProductNotFound):
		response.Fail(c, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, app.ErrCategoryNotFound):
		response.Fail(c, http.StatusNotFound, "category not found", nil)
	default:
		h.Logger.WithError(err).Error("catalog operation failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

// ---- product payloads ----

type createProductRequest struct {
	Name             string `json:"name" binding:"required"`
	ProductType      string `json:"product_type" binding:"required"`
	ReturnWindowDays *int   `json:"return_window_days"`
}

type renameProductRequest struct {
	Name string `json:"name" binding:"required"`
}

type returnWindowRequest struct {
	ReturnWindowDays *int `json:"return_window_days"`
}

type addSkuRequest struct {
	Code            string   `json:"code"`
	OptionValues    []string `json:"option_values"`
	Sequence        int      `json:"sequence"`
	PriceAmount     string   `json:"price_amount" binding:"required"`
	PriceCurrency   string   `json:"price_currency"`
	WeightGrams     int64    `json:"weight_grams" binding:"required"`
	LengthMM        int      `json:"length_mm" binding:"required"`
	WidthMM         int      `json:"width_mm" binding:"required"`
	HeightMM        int      `json:"height_mm" binding:"required"`
	Barcode         string   `json:"barcode"`
	Symbology       string   `json:"symbology"`
	GenerateBarcode bool     `json:"generate_barcode"`
	ItemRef         int      `json:"item_ref"`
}

type addReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type categoryLinkRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

func productBody(p *entity.CatProduct) gin.H {
	skus := make([]gin.H, 0, len(p.Skus()))
	for _, sku := range p.Skus() {
		d := gin.H{
			"code":         sku.Code.Value(),
			"price":        sku.Price.Amount().String(),
			"currency":     sku.Price.Currency(),
			"weight_grams": sku.Weight.Grams(),
			"length_mm":    sku.Dimensions.LengthMM(),
			"width_mm":     sku.Dimensions.WidthMM(),
			"height_mm":    sku.Dimensions.HeightMM(),
		}
		if sku.Barcode != nil {
			d["barcode"] = sku.Barcode.Value()
			d["symbology"] = string(sku.Barcode.Symbology())
		}
		skus = append(skus, d)
	}
	body := gin.H{
		"id":           p.ID(),
		"name":         p.Name().Value(),
		"slug":         p.Slug().Value(),
		"product_type": p.ProductType(),
		"status":       string(p.Status()),
		"category_ids": p.CategoryIDs(),
		"skus":         skus,
		"created_at":   p.CreatedAt(),
		"updated_at":   p.UpdatedAt(),
	}
	if d := p.ReturnWindowDays(); d != nil {
		body["return_window_days"] = *d
	}
	return body
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), app.CreateProductInput{
		Name:             req.Name,
		ProductType:      req.ProductType,
		ReturnWindowDays: req.ReturnWindowDays,
	})
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusCreated, productBody(p), "product created")
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	doc, err := h.Svc.ProductDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, doc, "product")
}

// ChangeProductStatus dispatches the lifecycle action named in the URL
// to the matching aggregate mutator.
func (h *CatalogHandler) ChangeProductStatus(c *gin.Context) {
	id := c.Param("id")
	var (
		p   *entity.CatProduct
		err error
	)
	switch action := c.Param("action"); action {
	case "submit":
		p, err = h.Svc.SubmitProduct(c.Request.Context(), id)
	case "start-review":
		p, err = h.Svc.StartProductReview(c.Request.Context(), id)
	case "approve":
		p, err = h.Svc.ApproveProduct(c.Request.Context(), id)
	case "reject":
		p, err = h.Svc.RejectProduct(c.Request.Context(), id)
	case "activate":
		p, err = h.Svc.ActivateProduct(c.Request.Context(), id)
	case "deactivate":
		p, err = h.Svc.DeactivateProduct(c.Request.Context(), id)
	case "discontinue":
		p, err = h.Svc.DiscontinueProduct(c.Request.Context(), id)
	case "return-to-draft":
		p, err = h.Svc.ReturnProductToDraft(c.Request.Context(), id)
	default:
		response.Fail(c, http.StatusBadRequest, "unknown status action", gin.H{"action": action})
		return
	}
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, productBody(p), "status changed")
}

func (h *CatalogHandler) RenameProduct(c *gin.Context) {
	var req renameProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.RenameProduct(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, productBody(p), "product renamed")
}

func (h *CatalogHandler) ChangeReturnWindow(c *gin.Context) {
	var req returnWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.ChangeReturnWindow(c.Request.Context(), c.Param("id"), req.ReturnWindowDays)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, productBody(p), "return window updated")
}

func (h *CatalogHandler) AddSku(c *gin.Context) {
	var req addSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddSku(c.Request.Context(), c.Param("id"), app.AddSkuInput{
		Code:            req.Code,
		OptionValues:    req.OptionValues,
		Sequence:        req.Sequence,
		PriceAmount:     req.PriceAmount,
		PriceCurrency:   req.PriceCurrency,
		WeightGrams:     req.WeightGrams,
		LengthMM:        req.LengthMM,
		WidthMM:         req.WidthMM,
		HeightMM:        req.HeightMM,
		Barcode:         req.Barcode,
		Symbology:       req.Symbology,
		GenerateBarcode: req.GenerateBarcode,
		ItemRef:         req.ItemRef,
	})
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusCreated, productBody(p), "sku added")
}

func (h *CatalogHandler) RemoveSku(c *gin.Context) {
	p, err := h.Svc.RemoveSku(c.Request.Context(), c.Param("id"), c.Param("code"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, productBody(p), "sku removed")
}

func (h *CatalogHandler) AddReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddReview(c.Request.Context(), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusCreated, productBody(p), "review added")
}

func (h *CatalogHandler) AssignCategory(c *gin.Context) {
	var req categoryLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AssignProductToCategory(c.Request.Context(), c.Param("id"), req.CategoryID); err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"assigned": true}, "category assigned")
}

func (h *CatalogHandler) UnassignCategory(c *gin.Context) {
	if err := h.Svc.UnassignProductFromCategory(c.Request.Context(), c.Param("id"), c.Param("categoryID")); err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"assigned": false}, "category unassigned")
}

func (h *CatalogHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadProductImage(c.Request.Context(), c.Param("id"), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"url": url}, "image uploaded")
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size := 10
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("product search failed")
		response.Fail(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.OK(c, http.StatusOK, hits, "search results")
}

// ---- category payloads ----

type createCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	ParentID  *string `json:"parent_id" binding:"omitempty,uuid"`
	SortOrder int     `json:"sort_order" binding:"gte=0"`
}

type renameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type categorySEORequest struct {
	Description    string `json:"description"`
	SeoTitle       string `json:"seo_title"`
	SeoDescription string `json:"seo_description"`
}

type sortOrderRequest struct {
	SortOrder int `json:"sort_order" binding:"gte=0"`
}

type changeParentRequest struct {
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type translationRequest struct {
	Locale      string `json:"locale" binding:"required,locale"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func categoryBody(cat *entity.CatCategory) gin.H {
	translations := make([]gin.H, 0, len(cat.Translations()))
	for _, tr := range cat.Translations() {
		translations = append(translations, gin.H{"locale": tr.Locale, "name": tr.Name, "description": tr.Description})
	}
	body := gin.H{
		"id":              cat.ID(),
		"name":            cat.Name().Value(),
		"slug":            cat.Slug().Value(),
		"description":     cat.Description(),
		"seo_title":       cat.SeoTitle(),
		"seo_description": cat.SeoDescription(),
		"sort_order":      cat.SortOrder(),
		"status":          string(cat.Status()),
		"product_ids":     cat.ProductIDs(),
		"child_ids":       cat.ChildIDs(),
		"translations":    translations,
		"is_leaf":         cat.IsLeaf(),
		"can_be_deleted":  cat.CanBeDeleted(),
		"created_at":      cat.CreatedAt(),
		"updated_at":      cat.UpdatedAt(),
	}
	if pid := cat.ParentID(); pid != nil {
		body["parent_id"] = *pid
	}
	return body
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), app.CreateCategoryInput{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusCreated, categoryBody(cat), "category created")
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	cat, err := h.Svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "category")
}

func (h *CatalogHandler) ListCategoryChildren(c *gin.Context) {
	children, err := h.Svc.ListCategoryChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(children))
	for _, child := range children {
		out = append(out, categoryBody(child))
	}
	response.OK(c, http.StatusOK, out, "children")
}

func (h *CatalogHandler) ActivateCategory(c *gin.Context) {
	cat, err := h.Svc.ActivateCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "category activated")
}

func (h *CatalogHandler) DeactivateCategory(c *gin.Context) {
	cat, err := h.Svc.DeactivateCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "category deactivated")
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "category deleted")
}

func (h *CatalogHandler) RenameCategory(c *gin.Context) {
	var req renameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.RenameCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "category renamed")
}

func (h *CatalogHandler) UpdateCategorySEO(c *gin.Context) {
	var req categorySEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategorySEO(c.Request.Context(), c.Param("id"), req.Description, req.SeoTitle, req.SeoDescription)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "category updated")
}

func (h *CatalogHandler) ChangeCategorySortOrder(c *gin.Context) {
	var req sortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.ChangeCategorySortOrder(c.Request.Context(), c.Param("id"), req.SortOrder)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "sort order updated")
}

func (h *CatalogHandler) ChangeCategoryParent(c *gin.Context) {
	var req changeParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.ChangeCategoryParent(c.Request.Context(), c.Param("id"), req.ParentID)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "parent changed")
}

func (h *CatalogHandler) UpsertCategoryTranslation(c *gin.Context) {
	var req translationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpsertCategoryTranslation(c.Request.Context(), c.Param("id"), req.Locale, req.Name, req.Description)
	if err != nil {
		h.writeDomainErr(c, err)
		return
	}
	response.OK(c, http.StatusOK, categoryBody(cat), "translation saved")
}
