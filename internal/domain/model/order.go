package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle: in_process -> accepted -> payed.
// There is no transition out of payed and no cancellation path.
type OrderStatus string

const (
	OrderStatusInProcess OrderStatus = "in_process"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPayed     OrderStatus = "payed"
)

// Order is a purchase draft created from basket contents. TotalCost is fixed
// at creation time and never recomputed from order items.
type Order struct {
	ID           int64
	UserID       int64
	CreatedAt    time.Time
	DeliveryType string
	PaymentType  string
	TotalCost    decimal.Decimal
	Status       OrderStatus
	City         string
	Address      string
	ProductIDs   []int64
}

// OrderItem snapshots price and quantity of one product line at acceptance.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Price     decimal.Decimal
	Count     int
}

// OrderLine is a submitted basket line used for order creation and acceptance.
type OrderLine struct {
	ProductID int64
	Price     decimal.Decimal
	Count     int
}

// Payment holds card data attached to an order. Recording it flips the order
// to payed and clears the session basket.
type Payment struct {
	OrderID int64
	Name    string
	Number  int64
	Year    int
	Code    int
}

// AcceptanceDetails carries delivery and address fields submitted on acceptance.
type AcceptanceDetails struct {
	DeliveryType string
	PaymentType  string
	City         string
	Address      string
	Lines        []OrderLine
}
