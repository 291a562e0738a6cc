package usecase

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/domain/model"
)

// Catalog query keys as sent by the storefront.
const (
	queryKeyCategory     = "category"
	queryKeyName         = "filter[name]"
	queryKeyMinPrice     = "filter[minPrice]"
	queryKeyMaxPrice     = "filter[maxPrice]"
	queryKeyFreeDelivery = "filter[freeDelivery]"
	queryKeyAvailable    = "filter[available]"
	queryKeySort         = "sort"
	queryKeySortType     = "sortType"
	queryKeyTags         = "tags[]"
	queryKeyCurrentPage  = "currentPage"
)

// Sort keys accepted by the catalog.
const (
	SortPrice   = "price"
	SortRating  = "rating"
	SortReviews = "reviews"
	SortDate    = "date"
)

// FlattenQuery reduces raw query parameters to a flat mapping. Every value is
// parsed as int when it consists of digits only; multi-valued keys keep the
// ordered list of their values, single-valued keys collapse to the scalar.
func FlattenQuery(values url.Values) map[string]any {
	flattened := make(map[string]any, len(values))
	for key, raw := range values {
		converted := make([]any, 0, len(raw))
		for _, v := range raw {
			if n, err := strconv.Atoi(v); err == nil && isDigits(v) {
				converted = append(converted, n)
			} else {
				converted = append(converted, v)
			}
		}
		if len(converted) > 1 {
			flattened[key] = converted
		} else if len(converted) == 1 {
			flattened[key] = converted[0]
		}
	}
	return flattened
}

// CatalogQuery is the parsed filter/sort/page request for the catalog.
type CatalogQuery struct {
	Category     *int64
	TagIDs       []int64
	Name         string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	FreeDelivery bool
	Available    bool
	Sort         string
	SortDesc     bool
	CurrentPage  int
}

// ParseCatalogQuery extracts recognized keys from query parameters.
// Unrecognized or absent keys are no-ops.
func ParseCatalogQuery(values url.Values) CatalogQuery {
	flattened := FlattenQuery(values)

	q := CatalogQuery{CurrentPage: 1}

	if id, ok := intValue(flattened[queryKeyCategory]); ok {
		q.Category = &id
	}
	q.TagIDs = intList(flattened[queryKeyTags])
	// A digits-only search term arrives flattened as an int; the name filter
	// still applies to it.
	if name, ok := stringValue(flattened[queryKeyName]); ok {
		q.Name = name
	}
	minPrice, minOK := priceValue(flattened[queryKeyMinPrice])
	maxPrice, maxOK := priceValue(flattened[queryKeyMaxPrice])
	// The price range applies only when both bounds are present.
	if minOK && maxOK {
		q.MinPrice = &minPrice
		q.MaxPrice = &maxPrice
	}
	q.FreeDelivery = flattened[queryKeyFreeDelivery] == "true"
	q.Available = flattened[queryKeyAvailable] == "true"
	if s, ok := flattened[queryKeySort].(string); ok {
		switch s {
		case SortPrice, SortRating, SortReviews, SortDate:
			q.Sort = s
		}
	}
	q.SortDesc = flattened[queryKeySortType] == "dec"
	if page, ok := intValue(flattened[queryKeyCurrentPage]); ok && page > 0 {
		q.CurrentPage = int(page)
	}

	return q
}

// Apply filters and sorts products. Filters are applied in a fixed order:
// category, tags, name, price range, free delivery, availability, sort.
func (q CatalogQuery) Apply(products []model.Product) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	filtered = append(filtered, products...)

	if q.Category != nil {
		filtered = keep(filtered, func(p model.Product) bool {
			return p.CategoryID != nil && *p.CategoryID == *q.Category
		})
	}
	if len(q.TagIDs) > 0 {
		wanted := make(map[int64]struct{}, len(q.TagIDs))
		for _, id := range q.TagIDs {
			wanted[id] = struct{}{}
		}
		filtered = keep(filtered, func(p model.Product) bool {
			for _, tag := range p.Tags {
				if _, ok := wanted[tag.ID]; ok {
					return true
				}
			}
			return false
		})
	}
	if q.Name != "" {
		needle := strings.ToLower(q.Name)
		filtered = keep(filtered, func(p model.Product) bool {
			return strings.Contains(strings.ToLower(p.Title), needle)
		})
	}
	if q.MinPrice != nil && q.MaxPrice != nil {
		filtered = keep(filtered, func(p model.Product) bool {
			return p.Price.GreaterThanOrEqual(*q.MinPrice) && p.Price.LessThanOrEqual(*q.MaxPrice)
		})
	}
	if q.FreeDelivery {
		filtered = keep(filtered, func(p model.Product) bool { return p.FreeDelivery })
	}
	if q.Available {
		filtered = keep(filtered, func(p model.Product) bool { return p.Count > 0 })
	}

	q.sortProducts(filtered)
	return filtered
}

func (q CatalogQuery) sortProducts(products []model.Product) {
	if q.Sort == "" {
		return
	}

	var less func(a, b model.Product) bool
	switch q.Sort {
	case SortPrice:
		less = func(a, b model.Product) bool { return a.Price.LessThan(b.Price) }
	case SortRating:
		less = func(a, b model.Product) bool { return a.Rating < b.Rating }
	case SortReviews:
		less = func(a, b model.Product) bool { return a.ReviewCount < b.ReviewCount }
	case SortDate:
		less = func(a, b model.Product) bool { return a.Date.Before(b.Date) }
	default:
		return
	}

	// Stable sort keeps fetch order for ties.
	sort.SliceStable(products, func(i, j int) bool {
		if q.SortDesc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func keep(products []model.Product, pred func(model.Product) bool) []model.Product {
	out := products[:0]
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}

func intValue(v any) (int64, bool) {
	n, ok := v.(int)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

func intList(v any) []int64 {
	switch val := v.(type) {
	case int:
		return []int64{int64(val)}
	case []any:
		ids := make([]int64, 0, len(val))
		for _, item := range val {
			if n, ok := item.(int); ok {
				ids = append(ids, int64(n))
			}
		}
		return ids
	default:
		return nil
	}
}

func priceValue(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case int:
		return decimal.NewFromInt(int64(val)), true
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}
