package usecase

import (
	"context"
	"math"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
)

// ReviewUseCase handles review submission and rating recomputation.
type ReviewUseCase struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, products: products, users: users}
}

// Create stores a review after verifying the product exists and the submitted
// author and email match the acting user.
func (u *ReviewUseCase) Create(ctx context.Context, userID int64, review model.Review) error {
	if _, err := u.products.GetByID(ctx, review.ProductID); err != nil {
		return err
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if review.Author != user.Username {
		return domainErrors.ErrForbidden
	}

	profile, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if review.Email != profile.Email {
		return domainErrors.ErrForbidden
	}

	review.AuthorID = userID
	if _, err := u.reviews.Create(ctx, review); err != nil {
		return err
	}
	return nil
}

// ListByProduct returns the product's reviews in submission order.
func (u *ReviewUseCase) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	return u.reviews.ListByProduct(ctx, productID)
}

// RecalculateRating persists the arithmetic mean of the product's review
// rates, rounded to two decimals, 0 when no reviews exist.
func (u *ReviewUseCase) RecalculateRating(ctx context.Context, productID int64) error {
	avg, err := u.reviews.AverageRate(ctx, productID)
	if err != nil {
		return err
	}
	return u.products.UpdateRating(ctx, productID, math.Round(avg*100)/100)
}
