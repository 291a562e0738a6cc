package usecase

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/domain/model"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catalogFixture() []model.Product {
	category := int64(1)
	other := int64(2)
	return []model.Product{
		{ID: 1, Title: "Mechanical Keyboard", Price: price("49.90"), Count: 5, CategoryID: &category,
			Rating: 4.5, ReviewCount: 10, FreeDelivery: true, Tags: []model.Tag{{ID: 1, Name: "input"}},
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Gaming Mouse", Price: price("15.00"), Count: 0, CategoryID: &category,
			Rating: 3.0, ReviewCount: 2, Tags: []model.Tag{{ID: 1, Name: "input"}},
			Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Monitor", Price: price("199.99"), Count: 3, CategoryID: &other,
			Rating: 5.0, ReviewCount: 7, Tags: []model.Tag{{ID: 2, Name: "displays"}},
			Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Title: "USB Cable", Price: price("10.00"), Count: 50, FreeDelivery: true,
			Rating: 4.0, ReviewCount: 1,
			Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return values
}

func TestFlattenQuery(t *testing.T) {
	values := mustParseQuery(t, "category=3&filter[name]=usb&tags[]=1&tags[]=2")
	flattened := FlattenQuery(values)

	if flattened["category"] != 3 {
		t.Fatalf("expected numeric category, got %#v", flattened["category"])
	}
	if flattened["filter[name]"] != "usb" {
		t.Fatalf("expected string name, got %#v", flattened["filter[name]"])
	}
	tags, ok := flattened["tags[]"].([]any)
	if !ok || len(tags) != 2 || tags[0] != 1 || tags[1] != 2 {
		t.Fatalf("expected ordered tag list, got %#v", flattened["tags[]"])
	}
}

func TestFlattenQueryKeepsSignedValuesAsStrings(t *testing.T) {
	values := mustParseQuery(t, "filter[minPrice]=-5&filter[maxPrice]=2.50")
	flattened := FlattenQuery(values)

	if flattened["filter[minPrice]"] != "-5" {
		t.Fatalf("expected signed value kept as string, got %#v", flattened["filter[minPrice]"])
	}
	if flattened["filter[maxPrice]"] != "2.50" {
		t.Fatalf("expected fractional value kept as string, got %#v", flattened["filter[maxPrice]"])
	}
}

func TestParseCatalogQueryDefaults(t *testing.T) {
	q := ParseCatalogQuery(url.Values{})
	if q.CurrentPage != 1 {
		t.Fatalf("expected page 1, got %d", q.CurrentPage)
	}
	if q.Category != nil || q.MinPrice != nil || q.MaxPrice != nil || q.FreeDelivery || q.Available || q.Sort != "" || q.SortDesc {
		t.Fatalf("expected empty query, got %+v", q)
	}
}

func TestPriceRangeRequiresBothBounds(t *testing.T) {
	products := catalogFixture()

	q := ParseCatalogQuery(mustParseQuery(t, "filter[minPrice]=10&filter[maxPrice]=20"))
	filtered := q.Apply(products)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 products in range, got %d", len(filtered))
	}
	for _, p := range filtered {
		if p.Price.LessThan(price("10")) || p.Price.GreaterThan(price("20")) {
			t.Fatalf("product %d price %s outside range", p.ID, p.Price)
		}
	}

	// A single bound disables the price filter entirely.
	q = ParseCatalogQuery(mustParseQuery(t, "filter[minPrice]=10"))
	if got := q.Apply(products); len(got) != len(products) {
		t.Fatalf("expected unfiltered collection, got %d products", len(got))
	}
	q = ParseCatalogQuery(mustParseQuery(t, "filter[maxPrice]=20"))
	if got := q.Apply(products); len(got) != len(products) {
		t.Fatalf("expected unfiltered collection, got %d products", len(got))
	}
}

func TestSortPriceDescending(t *testing.T) {
	q := ParseCatalogQuery(mustParseQuery(t, "sort=price&sortType=dec"))
	sorted := q.Apply(catalogFixture())

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Price.GreaterThan(sorted[i-1].Price) {
			t.Fatalf("expected non-increasing prices, got %s before %s", sorted[i-1].Price, sorted[i].Price)
		}
	}
}

func TestSortPriceAscendingByDefault(t *testing.T) {
	q := ParseCatalogQuery(mustParseQuery(t, "sort=price&sortType=inc"))
	sorted := q.Apply(catalogFixture())

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Price.LessThan(sorted[i-1].Price) {
			t.Fatalf("expected non-decreasing prices, got %s before %s", sorted[i-1].Price, sorted[i].Price)
		}
	}
}

func TestSortKeys(t *testing.T) {
	products := catalogFixture()

	q := CatalogQuery{Sort: SortRating, SortDesc: true}
	sorted := q.Apply(products)
	if sorted[0].ID != 3 {
		t.Fatalf("expected highest rated first, got %d", sorted[0].ID)
	}

	q = CatalogQuery{Sort: SortReviews, SortDesc: true}
	sorted = q.Apply(products)
	if sorted[0].ID != 1 {
		t.Fatalf("expected most reviewed first, got %d", sorted[0].ID)
	}

	q = CatalogQuery{Sort: SortDate, SortDesc: true}
	sorted = q.Apply(products)
	if sorted[0].ID != 4 {
		t.Fatalf("expected newest first, got %d", sorted[0].ID)
	}
}

func TestCategoryFilter(t *testing.T) {
	q := ParseCatalogQuery(mustParseQuery(t, "category=1"))
	filtered := q.Apply(catalogFixture())
	if len(filtered) != 2 {
		t.Fatalf("expected 2 products in category, got %d", len(filtered))
	}
	for _, p := range filtered {
		if p.CategoryID == nil || *p.CategoryID != 1 {
			t.Fatalf("product %d outside category", p.ID)
		}
	}
}

func TestTagFilterMatchesAnyTag(t *testing.T) {
	q := ParseCatalogQuery(mustParseQuery(t, "tags[]=1&tags[]=2"))
	filtered := q.Apply(catalogFixture())
	if len(filtered) != 3 {
		t.Fatalf("expected 3 tagged products, got %d", len(filtered))
	}
}

func TestNameFilterIsCaseInsensitiveSubstring(t *testing.T) {
	q := ParseCatalogQuery(mustParseQuery(t, "filter[name]=MOUSE"))
	filtered := q.Apply(catalogFixture())
	if len(filtered) != 1 || filtered[0].ID != 2 {
		t.Fatalf("expected the mouse only, got %+v", filtered)
	}
}

func TestNameFilterAcceptsNumericTerm(t *testing.T) {
	products := []model.Product{
		{ID: 1, Title: "Model 123 Drill"},
		{ID: 2, Title: "Hammer"},
	}

	q := ParseCatalogQuery(mustParseQuery(t, "filter[name]=123"))
	filtered := q.Apply(products)
	if len(filtered) != 1 || filtered[0].ID != 1 {
		t.Fatalf("expected the drill only, got %+v", filtered)
	}
}

func TestBooleanFiltersRequireLiteralTrue(t *testing.T) {
	products := catalogFixture()

	q := ParseCatalogQuery(mustParseQuery(t, "filter[freeDelivery]=true"))
	filtered := q.Apply(products)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 free-delivery products, got %d", len(filtered))
	}

	// Anything but the literal string leaves the filter off.
	q = ParseCatalogQuery(mustParseQuery(t, "filter[freeDelivery]=1"))
	if got := q.Apply(products); len(got) != len(products) {
		t.Fatalf("expected unfiltered collection, got %d products", len(got))
	}

	q = ParseCatalogQuery(mustParseQuery(t, "filter[available]=true"))
	for _, p := range q.Apply(products) {
		if p.Count <= 0 {
			t.Fatalf("product %d out of stock in available filter", p.ID)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := catalogFixture()
	q := ParseCatalogQuery(mustParseQuery(t, "sort=price&sortType=dec&filter[available]=true"))
	_ = q.Apply(products)

	if products[0].ID != 1 || products[3].ID != 4 {
		t.Fatalf("input slice mutated: %+v", products)
	}
}
