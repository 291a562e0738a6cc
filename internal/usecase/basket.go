package usecase

import (
	"context"

	"github.com/polkiloo/megano/internal/basket"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
)

// BasketUseCase manages the session-scoped quantity store and its
// reconciliation with product snapshots.
type BasketUseCase struct {
	store    basket.Store
	products repository.ProductRepository
}

// NewBasketUseCase constructs BasketUseCase.
func NewBasketUseCase(store basket.Store, products repository.ProductRepository) *BasketUseCase {
	return &BasketUseCase{store: store, products: products}
}

// Add reserves count units of the product for the session, clamped to the
// product's current stock, and returns the reconciled basket contents.
func (u *BasketUseCase) Add(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	u.store.Add(sessionID, productID, product.Count, count)
	return u.List(ctx, sessionID)
}

// Remove releases count units of the product for the session and returns the
// reconciled basket contents.
func (u *BasketUseCase) Remove(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	u.store.Remove(sessionID, productID, count)
	return u.List(ctx, sessionID)
}

// List prunes zero-quantity entries and returns the basket's products with
// their counts replaced by the reserved quantities.
func (u *BasketUseCase) List(ctx context.Context, sessionID string) ([]model.Product, error) {
	quantities := u.store.PruneZero(sessionID)
	if len(quantities) == 0 {
		return []model.Product{}, nil
	}

	ids := make([]int64, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}

	products, err := u.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return ApplyBasketCounts(products, quantities), nil
}

// Quantities exposes the raw session reservations without pruning.
func (u *BasketUseCase) Quantities(sessionID string) map[int64]int {
	return u.store.Quantities(sessionID)
}

// Clear drops the session basket, called after successful payment.
func (u *BasketUseCase) Clear(sessionID string) {
	u.store.Clear(sessionID)
}

// ApplyBasketCounts overwrites the count of products present in the basket
// with the reserved quantity. Products outside the basket keep their stock
// count: the basket view wants "quantity in cart" for items in the cart.
func ApplyBasketCounts(products []model.Product, quantities map[int64]int) []model.Product {
	out := append([]model.Product(nil), products...)
	for i := range out {
		if quantity, ok := quantities[out[i].ID]; ok {
			out[i].Count = quantity
		}
	}
	return out
}
