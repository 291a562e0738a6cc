package usecase

import (
	"context"
	"testing"

	"github.com/polkiloo/megano/internal/basket"
	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	testhelpers "github.com/polkiloo/megano/internal/test"
)

func newBasketFixtureUseCase() (*BasketUseCase, basket.Store) {
	store := basket.NewMemoryStore()
	repo := &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: 1, Title: "Keyboard", Price: price("49.90"), Count: 3},
		{ID: 2, Title: "Mouse", Price: price("15.00"), Count: 10},
	}}
	return NewBasketUseCase(store, repo), store
}

func TestBasketAddClampsToStock(t *testing.T) {
	uc, _ := newBasketFixtureUseCase()

	products, err := uc.Add(context.Background(), "s1", 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Count != 3 {
		t.Fatalf("expected quantity clamped to 3, got %+v", products)
	}

	// Further adds at the cap stay at the cap.
	products, err = uc.Add(context.Background(), "s1", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products[0].Count != 3 {
		t.Fatalf("expected quantity to stay 3, got %d", products[0].Count)
	}
}

func TestBasketAddUnknownProduct(t *testing.T) {
	uc, _ := newBasketFixtureUseCase()

	if _, err := uc.Add(context.Background(), "s1", 404, 1); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBasketRemoveClampsAtZero(t *testing.T) {
	uc, _ := newBasketFixtureUseCase()

	if _, err := uc.Add(context.Background(), "s1", 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	products, err := uc.Remove(context.Background(), "s1", 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty basket after over-removal, got %+v", products)
	}

	// Removing from an empty basket stays empty, never negative.
	products, err = uc.Remove(context.Background(), "s1", 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty basket, got %+v", products)
	}
}

func TestBasketListKeepsSessionsIsolated(t *testing.T) {
	uc, _ := newBasketFixtureUseCase()

	if _, err := uc.Add(context.Background(), "s1", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := uc.List(context.Background(), "s2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty basket for other session, got %+v", other)
	}
}

func TestBasketClear(t *testing.T) {
	uc, _ := newBasketFixtureUseCase()

	if _, err := uc.Add(context.Background(), "s1", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Clear("s1")

	products, err := uc.List(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected cleared basket, got %+v", products)
	}
}

func TestApplyBasketCountsLeavesOthersAlone(t *testing.T) {
	products := []model.Product{
		{ID: 1, Count: 9},
		{ID: 2, Count: 7},
	}
	reconciled := ApplyBasketCounts(products, map[int64]int{1: 2})

	if reconciled[0].Count != 2 {
		t.Fatalf("expected basket quantity 2, got %d", reconciled[0].Count)
	}
	if reconciled[1].Count != 7 {
		t.Fatalf("expected stock count preserved, got %d", reconciled[1].Count)
	}
	if products[0].Count != 9 {
		t.Fatalf("input mutated: %+v", products)
	}
}
