// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/cart"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
	"github.com/prnse-cda/cda-store/internal/domain/checkout"
	"github.com/prnse-cda/cda-store/internal/domain/navigation"
	"github.com/prnse-cda/cda-store/internal/infrastructure/storage"
	"github.com/prnse-cda/cda-store/internal/interfaces/http/handlers"
)

// Services bundles the wired application services the routes expose
type Services struct {
	Catalog  *catalog.Cache
	Cart     *cart.Service
	Checkout *checkout.Service
	Resolver *navigation.Resolver
	KV       storage.KV
}

// SetupRoutes wires all storefront routes onto the API group
func SetupRoutes(rg *gin.RouterGroup, svcs Services, cfg *config.Config) {
	setupCatalogRoutes(rg, svcs, cfg)
	setupCartRoutes(rg, svcs, cfg)
	setupCheckoutRoutes(rg, svcs, cfg)
	setupNavigationRoutes(rg, svcs, cfg)
	setupConsentRoutes(rg, svcs)
}

func setupCatalogRoutes(rg *gin.RouterGroup, svcs Services, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(svcs.Catalog, cfg)

	cat := rg.Group("/catalog")
	{
		cat.GET("/products", catalogHandler.ListProducts)
		cat.GET("/products/:id", catalogHandler.GetProduct)
		cat.GET("/collections", catalogHandler.ListCollections)
		cat.GET("/collections/:title/products", catalogHandler.ListCollectionProducts)
		cat.GET("/filters/:label/products", catalogHandler.ListFilteredProducts)
	}

	rg.GET("/contact", catalogHandler.GetContact)
}

func setupCartRoutes(rg *gin.RouterGroup, svcs Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svcs.Cart, cfg)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:index", cartHandler.UpdateCartLine)
		cartGroup.DELETE("/items/:index", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, svcs Services, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svcs.Checkout, svcs.Cart, cfg)

	rg.POST("/checkout", checkoutHandler.PlaceOrder)
}

func setupNavigationRoutes(rg *gin.RouterGroup, svcs Services, cfg *config.Config) {
	navHandler := handlers.NewNavigationHandler(svcs.Resolver, cfg)

	rg.GET("/navigate", navHandler.Resolve)
	rg.POST("/navigate/share", navHandler.ShareLink)
}

func setupConsentRoutes(rg *gin.RouterGroup, svcs Services) {
	consentHandler := handlers.NewConsentHandler(svcs.KV)

	rg.GET("/consent", consentHandler.GetConsent)
	rg.PUT("/consent", consentHandler.SetConsent)
}
