package facadetest

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/app"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/usecase"
)

// ShopFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset overrides fall back to minimal successful responses.
type ShopFacadeStub struct {
	RegisterFn       func(context.Context, string, string, string) (string, error)
	AuthenticateFn   func(context.Context, string, string) (string, error)
	ParseFn          func(string) (int64, error)
	ChangePasswordFn func(context.Context, int64, string, string) error
	ProfileFn        func(context.Context, int64) (*model.Profile, error)
	UpdateProfileFn  func(context.Context, model.Profile) (*model.Profile, error)

	CatalogFn      func(context.Context, usecase.CatalogQuery) (*usecase.ProductPage, error)
	PopularFn      func(context.Context) ([]model.Product, error)
	LimitedFn      func(context.Context) ([]model.Product, error)
	BannersFn      func(context.Context) ([]model.Product, error)
	SalesFn        func(context.Context, int) (*usecase.SalePage, error)
	ProductFn      func(context.Context, int64) (*model.ProductDetail, error)
	TagsFn         func(context.Context) ([]model.Tag, error)
	CategoriesFn   func(context.Context) ([]usecase.CategoryNode, error)
	CreateReviewFn func(context.Context, int64, model.Review) ([]model.Review, error)

	BasketFn           func(context.Context, string) ([]model.Product, error)
	AddToBasketFn      func(context.Context, string, int64, int) ([]model.Product, error)
	RemoveFromBasketFn func(context.Context, string, int64, int) ([]model.Product, error)

	CreateOrderFn func(context.Context, int64, []model.OrderLine) (*model.Order, error)
	OrdersFn      func(context.Context, int64) ([]app.OrderView, error)
	OrderFn       func(context.Context, int64, int64, string) (*app.OrderView, error)
	AcceptOrderFn func(context.Context, int64, int64, model.AcceptanceDetails) error
	PayOrderFn    func(context.Context, int64, int64, string, model.Payment) error
}

// Register returns token for successful registration scenarios.
func (s ShopFacadeStub) Register(ctx context.Context, name, username, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, username, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s ShopFacadeStub) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s ShopFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// ChangePassword executes configured override or succeeds.
func (s ShopFacadeStub) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, current, next)
	}
	return nil
}

// Profile returns configured or empty profile.
func (s ShopFacadeStub) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.Profile{UserID: userID}, nil
}

// UpdateProfile echoes the submitted profile.
func (s ShopFacadeStub) UpdateProfile(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, profile)
	}
	stored := profile
	return &stored, nil
}

// Catalog returns configured or empty page.
func (s ShopFacadeStub) Catalog(ctx context.Context, query usecase.CatalogQuery) (*usecase.ProductPage, error) {
	if s.CatalogFn != nil {
		return s.CatalogFn(ctx, query)
	}
	return &usecase.ProductPage{Items: []model.Product{}, CurrentPage: query.CurrentPage, LastPage: 1}, nil
}

// Popular returns configured or empty showcase.
func (s ShopFacadeStub) Popular(ctx context.Context) ([]model.Product, error) {
	if s.PopularFn != nil {
		return s.PopularFn(ctx)
	}
	return []model.Product{}, nil
}

// Limited returns configured or empty showcase.
func (s ShopFacadeStub) Limited(ctx context.Context) ([]model.Product, error) {
	if s.LimitedFn != nil {
		return s.LimitedFn(ctx)
	}
	return []model.Product{}, nil
}

// Banners returns configured or empty showcase.
func (s ShopFacadeStub) Banners(ctx context.Context) ([]model.Product, error) {
	if s.BannersFn != nil {
		return s.BannersFn(ctx)
	}
	return []model.Product{}, nil
}

// Sales returns configured or empty page.
func (s ShopFacadeStub) Sales(ctx context.Context, currentPage int) (*usecase.SalePage, error) {
	if s.SalesFn != nil {
		return s.SalesFn(ctx, currentPage)
	}
	return &usecase.SalePage{Items: []model.SaleProduct{}, CurrentPage: currentPage, LastPage: 1}, nil
}

// Product returns configured detail or a bare product.
func (s ShopFacadeStub) Product(ctx context.Context, id int64) (*model.ProductDetail, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.ProductDetail{Product: model.Product{ID: id}}, nil
}

// Tags returns configured or empty tags.
func (s ShopFacadeStub) Tags(ctx context.Context) ([]model.Tag, error) {
	if s.TagsFn != nil {
		return s.TagsFn(ctx)
	}
	return []model.Tag{}, nil
}

// Categories returns configured or empty tree.
func (s ShopFacadeStub) Categories(ctx context.Context) ([]usecase.CategoryNode, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []usecase.CategoryNode{}, nil
}

// CreateReview returns the configured review list.
func (s ShopFacadeStub) CreateReview(ctx context.Context, userID int64, review model.Review) ([]model.Review, error) {
	if s.CreateReviewFn != nil {
		return s.CreateReviewFn(ctx, userID, review)
	}
	return []model.Review{review}, nil
}

// Basket returns configured or empty basket.
func (s ShopFacadeStub) Basket(ctx context.Context, sessionID string) ([]model.Product, error) {
	if s.BasketFn != nil {
		return s.BasketFn(ctx, sessionID)
	}
	return []model.Product{}, nil
}

// AddToBasket delegates to override or returns a single-line basket.
func (s ShopFacadeStub) AddToBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	if s.AddToBasketFn != nil {
		return s.AddToBasketFn(ctx, sessionID, productID, count)
	}
	return []model.Product{{ID: productID, Count: count}}, nil
}

// RemoveFromBasket delegates to override or returns an empty basket.
func (s ShopFacadeStub) RemoveFromBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error) {
	if s.RemoveFromBasketFn != nil {
		return s.RemoveFromBasketFn(ctx, sessionID, productID, count)
	}
	return []model.Product{}, nil
}

// CreateOrder returns a draft order for the submitted lines.
func (s ShopFacadeStub) CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, userID, lines)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusInProcess, TotalCost: decimal.Zero}, nil
}

// Orders returns configured or empty order views.
func (s ShopFacadeStub) Orders(ctx context.Context, userID int64) ([]app.OrderView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []app.OrderView{}, nil
}

// Order returns configured view or a bare order.
func (s ShopFacadeStub) Order(ctx context.Context, orderID, userID int64, sessionID string) (*app.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, userID, sessionID)
	}
	return &app.OrderView{Order: model.Order{ID: orderID, UserID: userID}}, nil
}

// AcceptOrder executes configured override or succeeds.
func (s ShopFacadeStub) AcceptOrder(ctx context.Context, orderID, userID int64, details model.AcceptanceDetails) error {
	if s.AcceptOrderFn != nil {
		return s.AcceptOrderFn(ctx, orderID, userID, details)
	}
	return nil
}

// PayOrder executes configured override or succeeds.
func (s ShopFacadeStub) PayOrder(ctx context.Context, orderID, userID int64, sessionID string, payment model.Payment) error {
	if s.PayOrderFn != nil {
		return s.PayOrderFn(ctx, orderID, userID, sessionID, payment)
	}
	return nil
}

