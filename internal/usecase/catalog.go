package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
	"github.com/polkiloo/megano/internal/pkg/cache"
)

const (
	cacheKeyCatalog    cache.Key = "catalog"
	cacheKeyCategories cache.Key = "categories"
	cacheKeyTags       cache.Key = "tags"
	cacheKeyBanners    cache.Key = "banners"
)

const showcaseLimit = 4

// ProductPage is the catalog response envelope.
type ProductPage struct {
	Items       []model.Product
	CurrentPage int
	LastPage    int
}

// SalePage is the sales listing response envelope.
type SalePage struct {
	Items       []model.SaleProduct
	CurrentPage int
	LastPage    int
}

// CategoryNode is a category with its nested subcategories.
type CategoryNode struct {
	Category      model.Category
	Subcategories []CategoryNode
}

// CatalogUseCase serves catalog reads through an advisory TTL cache.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	cache      cache.Cache
	ttl        time.Duration
	shortTTL   time.Duration
	pageSize   int
}

// NewCatalogUseCase constructs CatalogUseCase. ttl guards bulk catalog reads,
// shortTTL guards banners and product detail.
func NewCatalogUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	c cache.Cache,
	ttl, shortTTL time.Duration,
	pageSize int,
) *CatalogUseCase {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &CatalogUseCase{
		products:   products,
		categories: categories,
		tags:       tags,
		cache:      c,
		ttl:        ttl,
		shortTTL:   shortTTL,
		pageSize:   pageSize,
	}
}

// Catalog applies the parsed query to the product collection and paginates
// the result.
func (u *CatalogUseCase) Catalog(ctx context.Context, query CatalogQuery) (*ProductPage, error) {
	products, err := u.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := query.Apply(products)
	items, lastPage := Paginate(filtered, query.CurrentPage, u.pageSize)
	return &ProductPage{Items: items, CurrentPage: query.CurrentPage, LastPage: lastPage}, nil
}

// Popular returns the four highest rated products.
func (u *CatalogUseCase) Popular(ctx context.Context) ([]model.Product, error) {
	products, err := u.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	ranked := append([]model.Product(nil), products...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rating > ranked[j].Rating })
	return head(ranked, showcaseLimit), nil
}

// Limited returns the four in-stock products with the lowest remainder.
func (u *CatalogUseCase) Limited(ctx context.Context) ([]model.Product, error) {
	products, err := u.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	inStock := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Count > 0 {
			inStock = append(inStock, p)
		}
	}
	sort.SliceStable(inStock, func(i, j int) bool { return inStock[i].Count < inStock[j].Count })
	return head(inStock, showcaseLimit), nil
}

// Banners returns up to four random in-stock products, cached briefly.
func (u *CatalogUseCase) Banners(ctx context.Context) ([]model.Product, error) {
	if cached, ok := u.cache.Get(cacheKeyBanners); ok {
		if banners, valid := cached.([]model.Product); valid {
			return banners, nil
		}
	}

	products, err := u.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	inStock := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Count > 0 {
			inStock = append(inStock, p)
		}
	}
	rand.Shuffle(len(inStock), func(i, j int) { inStock[i], inStock[j] = inStock[j], inStock[i] })
	banners := head(inStock, showcaseLimit)

	u.cache.Set(cacheKeyBanners, banners, u.shortTTL)
	return banners, nil
}

// Sales paginates products with an attached sale span.
func (u *CatalogUseCase) Sales(ctx context.Context, currentPage int) (*SalePage, error) {
	if currentPage < 1 {
		currentPage = 1
	}

	onSale, err := u.products.ListOnSale(ctx)
	if err != nil {
		return nil, err
	}

	items, lastPage := Paginate(onSale, currentPage, u.pageSize)
	return &SalePage{Items: items, CurrentPage: currentPage, LastPage: lastPage}, nil
}

// Product returns detail data for a single product, cached briefly.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.ProductDetail, error) {
	key := cache.Key(fmt.Sprintf("product:%d", id))
	if cached, ok := u.cache.Get(key); ok {
		if detail, valid := cached.(*model.ProductDetail); valid {
			return detail, nil
		}
	}

	detail, err := u.products.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, detail, u.shortTTL)
	return detail, nil
}

// Tags lists all tags, cached.
func (u *CatalogUseCase) Tags(ctx context.Context) ([]model.Tag, error) {
	if cached, ok := u.cache.Get(cacheKeyTags); ok {
		if tags, valid := cached.([]model.Tag); valid {
			return tags, nil
		}
	}

	tags, err := u.tags.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(cacheKeyTags, tags, u.ttl)
	return tags, nil
}

// Categories returns root categories with nested subcategories, cached.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]CategoryNode, error) {
	if cached, ok := u.cache.Get(cacheKeyCategories); ok {
		if tree, valid := cached.([]CategoryNode); valid {
			return tree, nil
		}
	}

	categories, err := u.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tree := buildCategoryTree(categories)
	u.cache.Set(cacheKeyCategories, tree, u.ttl)
	return tree, nil
}

// ProductsByIDs returns product snapshots for the given identifiers,
// uncached: callers use it for order views where stale stock is unacceptable.
func (u *CatalogUseCase) ProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	return u.products.ListByIDs(ctx, ids)
}

func (u *CatalogUseCase) allProducts(ctx context.Context) ([]model.Product, error) {
	if cached, ok := u.cache.Get(cacheKeyCatalog); ok {
		if products, valid := cached.([]model.Product); valid {
			return products, nil
		}
	}

	products, err := u.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(cacheKeyCatalog, products, u.ttl)
	return products, nil
}

func buildCategoryTree(categories []model.Category) []CategoryNode {
	children := make(map[int64][]model.Category)
	var roots []model.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(parent model.Category) CategoryNode
	build = func(parent model.Category) CategoryNode {
		node := CategoryNode{Category: parent, Subcategories: []CategoryNode{}}
		for _, child := range children[parent.ID] {
			node.Subcategories = append(node.Subcategories, build(child))
		}
		return node
	}

	tree := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree
}

func head(products []model.Product, limit int) []model.Product {
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}
