package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
	cartsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/cart"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/catalog"
	sessionsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/session"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/whatsapp"
)

// Deps carries the services the routes depend on.
type Deps struct {
	CatalogSvc  *catalog.Service
	CartSvc     *cartsvc.Service
	SessionSvc  *sessionsvc.Service
	ProductRepo productrepo.Repository
	WhatsApp    whatsapp.Builder
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/login", loginHandler(deps.SessionSvc))
	router.POST("/auth/logout", logoutHandler(deps.SessionSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/products/:id/whatsapp-link", productLinkHandler(deps.CatalogSvc, deps.WhatsApp))

	cart := router.Group("/cart")
	{
		cart.GET("", getCartHandler(deps.CartSvc))
		cart.POST("/items", addCartItemHandler(deps.CartSvc))
		cart.PUT("/items/:productId", changeCartQtyHandler(deps.CartSvc))
		cart.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))
		cart.DELETE("", clearCartHandler(deps.CartSvc))
		cart.GET("/whatsapp-link", cartLinkHandler(deps.CartSvc, deps.WhatsApp))
	}

	admin := router.Group("/admin", requireAuth(deps.SessionSvc))
	{
		admin.POST("/products", saveProductHandler(deps.CatalogSvc))
		admin.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))
		admin.POST("/products/:id/toggle", toggleAvailabilityHandler(deps.CatalogSvc))
		admin.GET("/products/export", exportHandler(deps.ProductRepo))
		admin.POST("/products/import", importHandler(deps.ProductRepo))
	}

	return router
}

// respondError maps the domain error taxonomy onto status codes. The catalog
// stays interactive after any single failure; storage trouble reads as a
// transient notice, never a crash.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrParse):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
