package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/app"
	"github.com/polkiloo/megano/internal/domain/model"
)

// OrderLineRequest is one basket line submitted with order creation or
// acceptance. Price is the display price the client saw; count the quantity.
type OrderLineRequest struct {
	ID    int64           `json:"id" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Count int             `json:"count" binding:"required,min=1"`
}

// OrderAcceptRequest carries delivery and payment choices for acceptance.
type OrderAcceptRequest struct {
	DeliveryType string             `json:"deliveryType"`
	PaymentType  string             `json:"paymentType"`
	City         string             `json:"city"`
	Address      string             `json:"address"`
	Products     []OrderLineRequest `json:"products" binding:"required"`
}

// OrderCreatedResponse returns the identifier of a freshly opened order.
type OrderCreatedResponse struct {
	OrderID int64 `json:"orderId"`
}

// OrderResponse is the order detail shape with the owner's contacts and
// product snapshots.
type OrderResponse struct {
	ID           int64             `json:"id"`
	CreatedAt    time.Time         `json:"createdAt"`
	FullName     string            `json:"fullName"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	DeliveryType string            `json:"deliveryType"`
	PaymentType  string            `json:"paymentType"`
	TotalCost    string            `json:"totalCost"`
	Status       string            `json:"status"`
	City         string            `json:"city"`
	Address      string            `json:"address"`
	Products     []ProductResponse `json:"products"`
}

// PaymentRequest carries the card data submitted for an order.
type PaymentRequest struct {
	Name   string `json:"name" binding:"required"`
	Number int64  `json:"number" binding:"required"`
	Year   int    `json:"year" binding:"required"`
	Code   int    `json:"code" binding:"required"`
}

// Lines converts the submitted products into domain order lines.
func Lines(products []OrderLineRequest) []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, model.OrderLine{ProductID: p.ID, Price: p.Price, Count: p.Count})
	}
	return lines
}

// NewOrderResponse converts an order view aggregate.
func NewOrderResponse(view app.OrderView) OrderResponse {
	return OrderResponse{
		ID:           view.Order.ID,
		CreatedAt:    view.Order.CreatedAt,
		FullName:     view.Profile.FullName,
		Email:        view.Profile.Email,
		Phone:        view.Profile.Phone,
		DeliveryType: view.Order.DeliveryType,
		PaymentType:  view.Order.PaymentType,
		TotalCost:    view.Order.TotalCost.StringFixed(2),
		Status:       string(view.Order.Status),
		City:         view.Order.City,
		Address:      view.Order.Address,
		Products:     NewProductResponses(view.Products),
	}
}
