package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/megano/internal/basket"
	"github.com/polkiloo/megano/internal/domain/model"
	testhelpers "github.com/polkiloo/megano/internal/test"
	"github.com/polkiloo/megano/internal/usecase"
)

type facadeFixture struct {
	facade   *ShopFacade
	users    *testhelpers.UserRepositoryStub
	products *testhelpers.ProductRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	reviews  *testhelpers.ReviewRepositoryStub
	ratings  *testhelpers.RatingEnqueuerStub
	store    basket.Store
}

func newFacadeFixture() *facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	user, _ := users.Create(context.Background(), "alice", "Alice", "hash:secret")
	users.Profiles[user.ID] = &model.Profile{UserID: user.ID, Email: "alice@example.com", FullName: "Alice Liddell"}

	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: 1, Title: "Keyboard", Price: decimal.RequireFromString("49.90"), Count: 3},
		{ID: 2, Title: "Mouse", Price: decimal.RequireFromString("15.00"), Count: 10},
	}}
	orders := &testhelpers.OrderRepositoryStub{}
	reviews := &testhelpers.ReviewRepositoryStub{}
	ratings := &testhelpers.RatingEnqueuerStub{Accept: true}
	store := basket.NewMemoryStore()

	auth := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	catalog := usecase.NewCatalogUseCase(products, &testhelpers.CategoryRepositoryStub{}, &testhelpers.TagRepositoryStub{},
		testhelpers.NewCacheStub(), 20*time.Second, 3*time.Second, 2)
	basketUC := usecase.NewBasketUseCase(store, products)
	orderUC := usecase.NewOrderUseCase(orders)
	reviewUC := usecase.NewReviewUseCase(reviews, products, users)

	return &facadeFixture{
		facade:   NewShopFacade(auth, catalog, basketUC, orderUC, reviewUC, ratings),
		users:    users,
		products: products,
		orders:   orders,
		reviews:  reviews,
		ratings:  ratings,
		store:    store,
	}
}

func TestFacadeCreateReviewEnqueuesRecalculation(t *testing.T) {
	f := newFacadeFixture()
	f.reviews.Reviews = []model.Review{{ProductID: 1, Author: "alice", Rate: 5}}

	review := model.Review{ProductID: 1, Author: "alice", Email: "alice@example.com", Rate: 5}
	list, err := f.facade.CreateReview(context.Background(), 1, review)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected refreshed review list, got %+v", list)
	}
	if len(f.ratings.IDs) != 1 || f.ratings.IDs[0] != 1 {
		t.Fatalf("expected rating job for product 1, got %+v", f.ratings.IDs)
	}
}

func TestFacadePayOrderClearsBasket(t *testing.T) {
	f := newFacadeFixture()

	if _, err := f.facade.AddToBasket(context.Background(), "s1", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, err := f.facade.CreateOrder(context.Background(), 1,
		[]model.OrderLine{{ProductID: 1, Price: decimal.RequireFromString("49.90"), Count: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment := model.Payment{Name: "Alice Liddell", Number: 1234, Year: 2027, Code: 1}
	if err := f.facade.PayOrder(context.Background(), order.ID, 1, "s1", payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	remaining, err := f.facade.Basket(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty basket after payment, got %+v", remaining)
	}
}

func TestFacadePayOrderKeepsBasketOnFailure(t *testing.T) {
	f := newFacadeFixture()

	if _, err := f.facade.AddToBasket(context.Background(), "s1", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment := model.Payment{Name: "Alice Liddell", Number: 1234, Year: 2027, Code: 1}
	if err := f.facade.PayOrder(context.Background(), 404, 1, "s1", payment); err == nil {
		t.Fatal("expected error for unknown order")
	}

	remaining, err := f.facade.Basket(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected basket to survive failed payment, got %+v", remaining)
	}
}

func TestFacadeOrderViewUsesBasketQuantities(t *testing.T) {
	f := newFacadeFixture()

	if _, err := f.facade.AddToBasket(context.Background(), "s1", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, err := f.facade.CreateOrder(context.Background(), 1,
		[]model.OrderLine{{ProductID: 1, Price: decimal.RequireFromString("49.90"), Count: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := f.facade.Order(context.Background(), order.ID, 1, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].Count != 2 {
		t.Fatalf("expected basket quantity 2 in view, got %+v", view.Products)
	}
	if view.Profile.FullName != "Alice Liddell" {
		t.Fatalf("expected owner profile in view, got %+v", view.Profile)
	}
}

func TestFacadeOrdersIncludeProducts(t *testing.T) {
	f := newFacadeFixture()

	if _, err := f.facade.CreateOrder(context.Background(), 1,
		[]model.OrderLine{{ProductID: 2, Price: decimal.RequireFromString("15.00"), Count: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, err := f.facade.Orders(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || len(views[0].Products) != 1 || views[0].Products[0].ID != 2 {
		t.Fatalf("unexpected views: %+v", views)
	}
}

func TestFacadeProfileDefaultsToEmpty(t *testing.T) {
	f := newFacadeFixture()
	delete(f.users.Profiles, 1)

	profile, err := f.facade.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.UserID != 1 || profile.Email != "" {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}
