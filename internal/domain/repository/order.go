package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, userID int64, totalCost decimal.Decimal, productIDs []int64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// Accept decrements stock and snapshots order items for every line in a
	// single transaction, then moves the order to accepted.
	Accept(ctx context.Context, orderID int64, details model.AcceptanceDetails) error
	// CreatePayment stores card data and moves the order to payed.
	CreatePayment(ctx context.Context, payment model.Payment) error
}
