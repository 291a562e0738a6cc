package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product describes a catalog item.
//
// Count is the warehouse stock level. Display reconciliation overwrites it
// with the basket-reserved quantity for products present in a basket.
type Product struct {
	ID              int64
	Title           string
	Description     string
	FullDescription string
	Price           decimal.Decimal
	Count           int
	FreeDelivery    bool
	CategoryID      *int64
	Rating          float64
	ReviewCount     int
	Tags            []Tag
	Images          []Image
	Date            time.Time
}

// Tag labels products for filtering.
type Tag struct {
	ID   int64
	Name string
}

// Specification is a name/value characteristic of a product.
type Specification struct {
	ID    int64
	Name  string
	Value string
}

// Image points at a stored product or category picture.
type Image struct {
	Src string
	Alt string
}

// ProductDetail extends Product with data shown only on the product page.
type ProductDetail struct {
	Product
	Specifications []Specification
	Reviews        []Review
}
