// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/config"
	"github.com/your-org/bookverse-storefront/internal/domain/admin"
	"github.com/your-org/bookverse-storefront/internal/domain/catalog"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/bookverse-storefront/internal/pkg/pdf"
)

// SetupRoutes wires the storefront's API surface. Every route runs
// behind the session middleware; the cart, checkout and admin groups
// add route guards on top, mirroring the storefront's page guards.
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, base store.Store, api *backend.Client) {
	books := catalog.NewService(api)
	searcher := catalog.NewSearcher(api)

	catalogHandler := handlers.NewCatalogHandler(books, searcher)
	authHandler := handlers.NewAuthHandler(cfg)
	cartHandler := handlers.NewCartHandler(books)
	checkoutHandler := handlers.NewCheckoutHandler(api, pdf.NewService(cfg))
	adminHandler := handlers.NewAdminHandler(admin.NewService(api))

	rg.Use(middleware.Session(cfg, base, api))

	// Public browsing
	booksGroup := rg.Group("/books")
	{
		booksGroup.GET("", catalogHandler.ListBooks)
		booksGroup.GET("/search", catalogHandler.SearchBooks)
		booksGroup.GET("/:id", catalogHandler.GetBook)
	}

	// Session identity
	auth := rg.Group("/auth")
	{
		auth.POST("/login", middleware.RedirectIfAuthenticated(), authHandler.Login)
		auth.POST("/signup", middleware.RedirectIfAuthenticated(), authHandler.Signup)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
	}

	// Cart requires a signed-in session
	cart := rg.Group("/cart")
	cart.Use(middleware.RequireAuth())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/coupon", cartHandler.ApplyCoupon)
	}

	// Checkout requires a signed-in session
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.RequireAuth())
	{
		checkout.POST("/shipping", checkoutHandler.ValidateShipping)
		checkout.POST("/payment", checkoutHandler.ValidatePayment)
		checkout.POST("", checkoutHandler.PlaceOrder)
		checkout.GET("/order", checkoutHandler.LastOrder)
		checkout.GET("/receipt", checkoutHandler.Receipt)
	}

	// Admin console requires admin standing
	adminGroup := rg.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	{
		adminGroup.GET("/dashboard", adminHandler.Dashboard)
		adminGroup.GET("/orders", adminHandler.ListOrders)
		adminGroup.GET("/users", adminHandler.ListUsers)

		adminBooks := adminGroup.Group("/books")
		{
			adminBooks.GET("", adminHandler.ListBooks)
			adminBooks.POST("", adminHandler.CreateBook)
			adminBooks.PUT("/:id", adminHandler.UpdateBook)
			adminBooks.DELETE("/:id", adminHandler.DeleteBook)
		}
	}
}
