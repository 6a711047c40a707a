package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/mkotelnikov-git/storefront-api/controllers/category"
	productControllers "github.com/mkotelnikov-git/storefront-api/controllers/product"
	"github.com/mkotelnikov-git/storefront-api/logger"
)

// SetupCatalogRoutes registers the public browsing endpoints plus the
// catalog write endpoints used to manage stock and prices.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))         // GET /products
		products.GET("/:id", productControllers.GetProductByID(db))  // GET /products/:id
		products.POST("", productControllers.CreateProduct(db, log)) // POST /products
		products.PUT("/:id", productControllers.UpdateProduct(db, log))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryControllers.GetCategoriesHandler(db))    // GET /categories
		categories.GET("/:id", categoryControllers.GetCategoryHandler(db))  // GET /categories/:id
		categories.POST("", categoryControllers.CreateCategoryHandler(db, log))
	}
}
