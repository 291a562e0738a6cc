package handlers

import (
	"context"

	"github.com/polkiloo/megano/internal/app"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (int64, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	Profile(ctx context.Context, userID int64) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile model.Profile) (*model.Profile, error)
}

// CatalogFacade encapsulates catalog reads and review submission.
type CatalogFacade interface {
	Catalog(ctx context.Context, query usecase.CatalogQuery) (*usecase.ProductPage, error)
	Popular(ctx context.Context) ([]model.Product, error)
	Limited(ctx context.Context) ([]model.Product, error)
	Banners(ctx context.Context) ([]model.Product, error)
	Sales(ctx context.Context, currentPage int) (*usecase.SalePage, error)
	Product(ctx context.Context, id int64) (*model.ProductDetail, error)
	Tags(ctx context.Context) ([]model.Tag, error)
	Categories(ctx context.Context) ([]usecase.CategoryNode, error)
	CreateReview(ctx context.Context, userID int64, review model.Review) ([]model.Review, error)
}

// BasketFacade provides session basket operations.
type BasketFacade interface {
	Basket(ctx context.Context, sessionID string) ([]model.Product, error)
	AddToBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error)
	RemoveFromBasket(ctx context.Context, sessionID string, productID int64, count int) ([]model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]app.OrderView, error)
	Order(ctx context.Context, orderID, userID int64, sessionID string) (*app.OrderView, error)
	AcceptOrder(ctx context.Context, orderID, userID int64, details model.AcceptanceDetails) error
	PayOrder(ctx context.Context, orderID, userID int64, sessionID string, payment model.Payment) error
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	CatalogFacade
	BasketFacade
	OrderFacade
}
