package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle:
// in_process -> accepted -> payed.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Create opens a draft order from the submitted basket lines. The total cost
// is fixed here and never recomputed from order items later.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	total := decimal.Zero
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Count))))
		ids = append(ids, line.ProductID)
	}

	return u.orders.Create(ctx, userID, total.Round(2), ids)
}

// GetByID returns the order after verifying ownership.
func (u *OrderUseCase) GetByID(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Accept converts the draft order plus submitted lines into persisted order
// items and decremented stock, in one transaction, and moves the order to
// accepted.
func (u *OrderUseCase) Accept(ctx context.Context, orderID, userID int64, details model.AcceptanceDetails) error {
	order, err := u.GetByID(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order.Status == model.OrderStatusPayed {
		return domainErrors.ErrOrderFinalized
	}
	if len(details.Lines) == 0 {
		return domainErrors.ErrEmptyOrder
	}

	return u.orders.Accept(ctx, orderID, details)
}

// Pay records card data for the order and moves it to payed.
func (u *OrderUseCase) Pay(ctx context.Context, orderID, userID int64, payment model.Payment) error {
	order, err := u.GetByID(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order.Status == model.OrderStatusPayed {
		return domainErrors.ErrOrderFinalized
	}

	payment.OrderID = orderID
	return u.orders.CreatePayment(ctx, payment)
}
