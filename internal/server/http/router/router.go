package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/megano/internal/server/http/handlers"
	"github.com/polkiloo/megano/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.Session())

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	basketHandler := handlers.NewBasketHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")

	api.POST("/sign-up", authHandler.SignUp)
	api.POST("/sign-in", authHandler.SignIn)
	api.POST("/sign-out", authHandler.SignOut)

	api.GET("/categories", catalogHandler.Categories)
	api.GET("/catalog", catalogHandler.Catalog)
	api.GET("/products/popular", catalogHandler.Popular)
	api.GET("/products/limited", catalogHandler.Limited)
	api.GET("/sales", catalogHandler.Sales)
	api.GET("/banners", catalogHandler.Banners)
	api.GET("/product/:id", catalogHandler.Product)
	api.GET("/tags", catalogHandler.Tags)

	api.GET("/basket", basketHandler.List)
	api.POST("/basket", basketHandler.Add)
	api.DELETE("/basket", basketHandler.Remove)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/product/:id/reviews", catalogHandler.CreateReview)
	authorized.GET("/orders", orderHandler.List)
	authorized.POST("/orders", orderHandler.Create)
	authorized.GET("/order/:id", orderHandler.Get)
	authorized.POST("/order/:id", orderHandler.Accept)
	authorized.POST("/payment/:id", orderHandler.Pay)
	authorized.GET("/profile", authHandler.Profile)
	authorized.POST("/profile", authHandler.UpdateProfile)
	authorized.POST("/profile/password", authHandler.ChangePassword)

	return engine
}
