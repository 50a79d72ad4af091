package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/handlers"
	"github.com/monocle-dev/storefront/internal/middleware"
)

func NewRouter(h *handlers.Handler, identity middleware.Resolver, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authenticated := middleware.AuthMiddleware(identity)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ws/cart", authenticated, h.CartSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/users", authenticated, middleware.AdminOnly(), h.ListUsers)
			auth.GET("/users/me", authenticated, h.Me)
		}

		api.PUT("/users/me", authenticated, h.UpdateMe)

		carts := api.Group("/carts", authenticated)
		{
			carts.GET("/cart", h.GetActiveCart)
			carts.POST("/cart", h.CreateCart)
			carts.POST("/cart/items", h.AddCartItem)
			carts.GET("/cart/:cart_id/cart-items", h.ListCartItems)
			carts.GET("/cart/:cart_id/cart-items/count", h.CountCartItems)
			carts.PUT("/cart/:cart_id/cart-status", h.CloseCart)
			carts.DELETE("/cart/:cart_id", h.DeleteCart)
		}

		api.POST("/cart-items", authenticated, h.AddItemToCart)

		products := api.Group("/products")
		{
			products.GET("/variants", h.ListVariants)
			products.GET("/category/:id", h.ProductsByCategory)
			products.GET("/product/:id", h.GetProduct)
			products.GET("/product-images", h.ProductImages)
			products.GET("/product-colors", h.ProductColors)
			products.GET("/product-sizes", h.ProductSizes)
		}

		api.GET("/categories", h.ListCategories)
		api.GET("/categories/:id", h.GetCategory)
		api.GET("/subcategories", h.ListSubcategories)
		api.GET("/subcategories/:parent_id", h.SubcategoriesOf)

		orders := api.Group("/orders", authenticated)
		{
			orders.GET("/me", h.MyOrders)
			orders.GET("/me/:order_id", h.MyOrder)
		}
	}

	return r
}
