package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/megano/internal/app"
	"github.com/polkiloo/megano/internal/config"
	"github.com/polkiloo/megano/internal/domain/repository"
	"github.com/polkiloo/megano/internal/storage/postgres"
	"github.com/polkiloo/megano/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		AuthSecret:       "secret",
		PageSize:         2,
		CacheTTL:         time.Millisecond,
		BannerCacheTTL:   time.Millisecond,
		RatingWorkerPool: 1,
		RatingQueueSize:  1,
		ShutdownTimeout:  time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.ShopFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(test.NewUserRepositoryStub())),
			fx.Replace(repository.ProductRepository(&test.ProductRepositoryStub{})),
			fx.Replace(repository.CategoryRepository(&test.CategoryRepositoryStub{})),
			fx.Replace(repository.TagRepository(&test.TagRepositoryStub{})),
			fx.Replace(repository.ReviewRepository(&test.ReviewRepositoryStub{})),
			fx.Replace(repository.OrderRepository(&test.OrderRepositoryStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected shop facade instance")
	}
}
