package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a time-boxed discount attached to a single product.
type Sale struct {
	ProductID int64
	DateFrom  time.Time
	DateTo    time.Time
	Discount  int
}

// SalePrice computes the discounted price: price - round(price*discount/100, 2).
func (s Sale) SalePrice(price decimal.Decimal) decimal.Decimal {
	discount := price.Mul(decimal.NewFromInt(int64(s.Discount))).Div(decimal.NewFromInt(100)).Round(2)
	return price.Sub(discount)
}

// SaleProduct is the sales listing projection of a discounted product.
type SaleProduct struct {
	ID     int64
	Title  string
	Price  decimal.Decimal
	Images []Image
	Sale   Sale
}
