package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/megano/internal/config"
	"github.com/polkiloo/megano/internal/domain/repository"
	"github.com/polkiloo/megano/internal/pkg/cache"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewBasketUseCase,
	NewReviewUseCase,
	newCatalogUseCase,
)

type catalogParams struct {
	fx.In

	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Tags       repository.TagRepository
	Cache      cache.Cache
	Config     *config.Config
}

func newCatalogUseCase(p catalogParams) *CatalogUseCase {
	return NewCatalogUseCase(
		p.Products,
		p.Categories,
		p.Tags,
		p.Cache,
		p.Config.CacheTTL,
		p.Config.BannerCacheTTL,
		p.Config.PageSize,
	)
}
