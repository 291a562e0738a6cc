package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/server/http/dto"
	"github.com/polkiloo/megano/internal/usecase"
)

// CatalogHandler serves catalog browsing and review submission.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Catalog handles GET /api/catalog.
func (h *CatalogHandler) Catalog(c *gin.Context) {
	query := usecase.ParseCatalogQuery(c.Request.URL.Query())

	page, err := h.facade.Catalog(c.Request.Context(), query)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CatalogResponse{
		Items:       dto.NewProductResponses(page.Items),
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
	})
}

// Popular handles GET /api/products/popular.
func (h *CatalogHandler) Popular(c *gin.Context) {
	h.showcase(c, h.facade.Popular)
}

// Limited handles GET /api/products/limited.
func (h *CatalogHandler) Limited(c *gin.Context) {
	h.showcase(c, h.facade.Limited)
}

// Banners handles GET /api/banners.
func (h *CatalogHandler) Banners(c *gin.Context) {
	h.showcase(c, h.facade.Banners)
}

// Sales handles GET /api/sales.
func (h *CatalogHandler) Sales(c *gin.Context) {
	currentPage, err := strconv.Atoi(c.Query("currentPage"))
	if err != nil || currentPage < 1 {
		currentPage = 1
	}

	page, err := h.facade.Sales(c.Request.Context(), currentPage)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	items := make([]dto.SaleItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, dto.NewSaleItemResponse(item))
	}
	c.JSON(http.StatusOK, dto.SalesResponse{
		Items:       items,
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
	})
}

// Product handles GET /api/product/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	detail, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductDetailResponse(*detail))
}

// CreateReview handles POST /api/product/:id/reviews.
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review := model.Review{
		ProductID: id,
		Author:    req.Author,
		Email:     req.Email,
		Text:      req.Text,
		Rate:      req.Rate,
	}
	reviews, err := h.facade.CreateReview(c.Request.Context(), CurrentUserID(c), review)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		response = append(response, dto.NewReviewResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Tags handles GET /api/tags.
func (h *CatalogHandler) Tags(c *gin.Context) {
	tags, err := h.facade.Tags(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, dto.TagResponse(tag))
	}
	c.JSON(http.StatusOK, response)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	tree, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(tree))
	for _, node := range tree {
		response = append(response, dto.NewCategoryResponse(node))
	}
	c.JSON(http.StatusOK, response)
}

func (h *CatalogHandler) showcase(c *gin.Context, fetch func(ctx context.Context) ([]model.Product, error)) {
	products, err := fetch(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}
