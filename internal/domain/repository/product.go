package repository

import (
	"context"

	"github.com/polkiloo/megano/internal/domain/model"
)

// ProductRepository describes persistence operations with catalog products.
type ProductRepository interface {
	// ListAll returns every product with tags and live review counts attached.
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetDetail(ctx context.Context, id int64) (*model.ProductDetail, error)
	ListOnSale(ctx context.Context) ([]model.SaleProduct, error)
	UpdateRating(ctx context.Context, id int64, rating float64) error
}

// CategoryRepository describes persistence operations with categories.
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]model.Category, error)
}

// TagRepository describes persistence operations with tags.
type TagRepository interface {
	ListAll(ctx context.Context) ([]model.Tag, error)
}

// ReviewRepository describes persistence operations with product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (*model.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.Review, error)
	// AverageRate returns the arithmetic mean of all review rates for the
	// product, 0 when no reviews exist.
	AverageRate(ctx context.Context, productID int64) (float64, error)
}
