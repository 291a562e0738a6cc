package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/megano/internal/app"
	"github.com/polkiloo/megano/internal/basket"
	"github.com/polkiloo/megano/internal/config"
	"github.com/polkiloo/megano/internal/logger"
	"github.com/polkiloo/megano/internal/pkg/auth"
	"github.com/polkiloo/megano/internal/pkg/cache"
	"github.com/polkiloo/megano/internal/server/http/handlers"
	"github.com/polkiloo/megano/internal/server/http/router"
	"github.com/polkiloo/megano/internal/storage/postgres"
	"github.com/polkiloo/megano/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		cache.Module,
		basket.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.ShopFacade) handlers.ShopFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
