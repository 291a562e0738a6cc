package dto

import (
	"time"

	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/usecase"
)

// ImageResponse describes a product or category image.
type ImageResponse struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// TagResponse describes a product tag.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the catalog card shape. Price is serialized as a
// fixed two-decimal string; reviews carries the review count.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Category     *int64          `json:"category"`
	Price        string          `json:"price"`
	Count        int             `json:"count"`
	Date         time.Time       `json:"date"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FreeDelivery bool            `json:"freeDelivery"`
	Images       []ImageResponse `json:"images"`
	Tags         []TagResponse   `json:"tags"`
	Reviews      int             `json:"reviews"`
	Rating       float64         `json:"rating"`
}

// ProductDetailResponse extends the card with full description,
// specifications and the review list.
type ProductDetailResponse struct {
	ID              int64                   `json:"id"`
	Category        *int64                  `json:"category"`
	Price           string                  `json:"price"`
	Count           int                     `json:"count"`
	Date            time.Time               `json:"date"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	FullDescription string                  `json:"fullDescription"`
	FreeDelivery    bool                    `json:"freeDelivery"`
	Images          []ImageResponse         `json:"images"`
	Tags            []TagResponse           `json:"tags"`
	Reviews         []ReviewResponse        `json:"reviews"`
	Specifications  []SpecificationResponse `json:"specifications"`
	Rating          float64                 `json:"rating"`
}

// SpecificationResponse describes a product characteristic.
type SpecificationResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReviewResponse describes a stored review.
type ReviewResponse struct {
	Author string    `json:"author"`
	Email  string    `json:"email"`
	Text   string    `json:"text"`
	Rate   int       `json:"rate"`
	Date   time.Time `json:"date"`
}

// ReviewRequest is the review submission payload.
type ReviewRequest struct {
	Author string `json:"author" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Text   string `json:"text"`
	Rate   int    `json:"rate" binding:"required,min=1,max=5"`
}

// CatalogResponse is the filter/sort/paginate envelope.
type CatalogResponse struct {
	Items       []ProductResponse `json:"items"`
	CurrentPage int               `json:"currentPage"`
	LastPage    int               `json:"lastPage"`
}

// SaleItemResponse describes a discounted product. Sale dates use the
// month-day form the storefront renders verbatim.
type SaleItemResponse struct {
	ID        int64           `json:"id"`
	Price     string          `json:"price"`
	SalePrice string          `json:"salePrice"`
	DateFrom  string          `json:"dateFrom"`
	DateTo    string          `json:"dateTo"`
	Title     string          `json:"title"`
	Images    []ImageResponse `json:"images"`
}

// SalesResponse is the sales listing envelope.
type SalesResponse struct {
	Items       []SaleItemResponse `json:"items"`
	CurrentPage int                `json:"currentPage"`
	LastPage    int                `json:"lastPage"`
}

// CategoryResponse is a category with nested subcategories.
type CategoryResponse struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Image         ImageResponse      `json:"image"`
	Subcategories []CategoryResponse `json:"subcategories"`
}

const saleDateLayout = "01-02"

// NewProductResponse converts a product snapshot to its card shape.
func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Category:     p.CategoryID,
		Price:        p.Price.StringFixed(2),
		Count:        p.Count,
		Date:         p.Date,
		Title:        p.Title,
		Description:  p.Description,
		FreeDelivery: p.FreeDelivery,
		Images:       newImageResponses(p.Images),
		Tags:         newTagResponses(p.Tags),
		Reviews:      p.ReviewCount,
		Rating:       p.Rating,
	}
}

// NewProductResponses converts a product slice, never returning nil.
func NewProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// NewProductDetailResponse converts a product detail aggregate.
func NewProductDetailResponse(d model.ProductDetail) ProductDetailResponse {
	reviews := make([]ReviewResponse, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, NewReviewResponse(r))
	}
	specs := make([]SpecificationResponse, 0, len(d.Specifications))
	for _, s := range d.Specifications {
		specs = append(specs, SpecificationResponse{Name: s.Name, Value: s.Value})
	}
	return ProductDetailResponse{
		ID:              d.ID,
		Category:        d.CategoryID,
		Price:           d.Price.StringFixed(2),
		Count:           d.Count,
		Date:            d.Date,
		Title:           d.Title,
		Description:     d.Description,
		FullDescription: d.FullDescription,
		FreeDelivery:    d.FreeDelivery,
		Images:          newImageResponses(d.Images),
		Tags:            newTagResponses(d.Tags),
		Reviews:         reviews,
		Specifications:  specs,
		Rating:          d.Rating,
	}
}

// NewReviewResponse converts a stored review.
func NewReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		Author: r.Author,
		Email:  r.Email,
		Text:   r.Text,
		Rate:   r.Rate,
		Date:   r.Date,
	}
}

// NewSaleItemResponse converts a discounted product.
func NewSaleItemResponse(p model.SaleProduct) SaleItemResponse {
	return SaleItemResponse{
		ID:        p.ID,
		Price:     p.Price.StringFixed(2),
		SalePrice: p.Sale.SalePrice(p.Price).StringFixed(2),
		DateFrom:  p.Sale.DateFrom.Format(saleDateLayout),
		DateTo:    p.Sale.DateTo.Format(saleDateLayout),
		Title:     p.Title,
		Images:    newImageResponses(p.Images),
	}
}

// NewCategoryResponse converts a category subtree.
func NewCategoryResponse(node usecase.CategoryNode) CategoryResponse {
	subcategories := make([]CategoryResponse, 0, len(node.Subcategories))
	for _, child := range node.Subcategories {
		subcategories = append(subcategories, NewCategoryResponse(child))
	}
	return CategoryResponse{
		ID:            node.Category.ID,
		Title:         node.Category.Title,
		Image:         ImageResponse(node.Category.Image),
		Subcategories: subcategories,
	}
}

func newImageResponses(images []model.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse(img))
	}
	return out
}

func newTagResponses(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagResponse(tag))
	}
	return out
}
