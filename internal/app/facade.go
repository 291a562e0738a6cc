package app

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/usecase"
)

// RatingEnqueuer schedules asynchronous product rating recomputation.
// Enqueue reports whether the job was accepted; a dropped job is not retried.
type RatingEnqueuer interface {
	Enqueue(productID int64) bool
}

// OrderView bundles an order with the data its response needs: product
// snapshots and the owner's contact details.
type OrderView struct {
	Order    model.Order
	Products []model.Product
	Profile  model.Profile
}

type ShopFacade struct {
	auth    *usecase.AuthUseCase
	catalog *usecase.CatalogUseCase
	basket  *usecase.BasketUseCase
	orders  *usecase.OrderUseCase
	reviews *usecase.ReviewUseCase
	ratings RatingEnqueuer
}

func NewShopFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	basket *usecase.BasketUseCase,
	orders *usecase.OrderUseCase,
	reviews *usecase.ReviewUseCase,
	ratings RatingEnqueuer,
) *ShopFacade {
	return &ShopFacade{
		auth:    auth,
		catalog: catalog,
		basket:  basket,
		orders:  orders,
		reviews: reviews,
		ratings: ratings,
	}
}

func (f *ShopFacade) Register(ctx context.Context, name, username, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, username, password)
	return token, err
}

func (f *ShopFacade) Authenticate(ctx context.Context, username, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, username, password)
	return token, err
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	return f.auth.ChangePassword(ctx, userID, current, next)
}

func (f *ShopFacade) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := f.auth.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (f *ShopFacade) UpdateProfile(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	return f.auth.UpdateProfile(ctx, profile)
}

func (f *ShopFacade) Catalog(ctx context.Context, query usecase.CatalogQuery) (*usecase.ProductPage, error) {
	return f.catalog.Catalog(ctx, query)
}

func (f *ShopFacade) Popular(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Popular(ctx)
}

func (f *ShopFacade) Limited(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Limited(ctx)
}

func (f *ShopFacade) Banners(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Banners(ctx)
}

func (f *ShopFacade) Sales(ctx context.Context, currentPage int) (*usecase.SalePage, error) {
	return f.catalog.Sales(ctx, currentPage)
}

func (f *ShopFacade) Product(ctx context.Context, id int64) (*model.ProductDetail, error) {
	return f.catalog.Product(ctx, id)
}

func (f *ShopFacade) Tags(ctx context.Context) ([]model.Tag, error) {
	return f.catalog.Tags(ctx)
}

func (f *ShopFacade) Categories(ctx context.Context) ([]usecase.CategoryNode, error) {
	return f.catalog.Categories(ctx)
}

// CreateReview stores the review, schedules rating recomputation and returns
// the product's refreshed review list.
func (f *ShopFacade) CreateReview(ctx context.Context, userID int64, review model.Review) ([]model.Review, error) {
	if err := f.reviews.Create(ctx, userID, review); err != nil {
		return nil, err
	}
	f.ratings.Enqueue(review.ProductID)
	return f.reviews.ListByProduct(ctx, review.ProductID)
}

func (f *ShopFacade) Basket(ctx context.Context, sessionID string) ([]model.Product, error) {
	return f.basket.List(ctx, sessionID)
}

func (f *ShopFacade) AddToBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	return f.basket.Add(ctx, sessionID, productID, count)
}

func (f *ShopFacade) RemoveFromBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	return f.basket.Remove(ctx, sessionID, productID, count)
}

func (f *ShopFacade) CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	return f.orders.Create(ctx, userID, lines)
}

func (f *ShopFacade) Orders(ctx context.Context, userID int64) ([]OrderView, error) {
	orders, err := f.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := f.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		products, err := f.catalog.ProductsByIDs(ctx, order.ProductIDs)
		if err != nil {
			return nil, err
		}
		views = append(views, OrderView{Order: order, Products: products, Profile: *profile})
	}
	return views, nil
}

// Order returns the order detail view. Product counts are replaced by the
// session's basket quantities so the confirmation page shows what is being
// bought, not what is left in stock.
func (f *ShopFacade) Order(ctx context.Context, orderID, userID int64, sessionID string) (*OrderView, error) {
	order, err := f.orders.GetByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	products, err := f.catalog.ProductsByIDs(ctx, order.ProductIDs)
	if err != nil {
		return nil, err
	}
	products = usecase.ApplyBasketCounts(products, f.basket.Quantities(sessionID))

	profile, err := f.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &OrderView{Order: *order, Products: products, Profile: *profile}, nil
}

func (f *ShopFacade) AcceptOrder(ctx context.Context, orderID, userID int64, details model.AcceptanceDetails) error {
	return f.orders.Accept(ctx, orderID, userID, details)
}

// PayOrder records the payment and drops the session basket on success.
func (f *ShopFacade) PayOrder(ctx context.Context, orderID, userID int64, sessionID string, payment model.Payment) error {
	if err := f.orders.Pay(ctx, orderID, userID, payment); err != nil {
		return err
	}
	f.basket.Clear(sessionID)
	return nil
}
