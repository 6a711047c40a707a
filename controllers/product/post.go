package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/models"
)

type ProductInput struct {
	Title      string          `json:"title" binding:"required"`
	CategoryID uint            `json:"category_id" binding:"required"`
	Count      int             `json:"count"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

// POST /products
func CreateProduct(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must not be negative"})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		product := models.Product{
			Title:      input.Title,
			CategoryID: input.CategoryID,
			Count:      input.Count,
			Price:      input.Price,
		}
		if err := db.Create(&product).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		log.Info("product created", "product_id", product.ID, "title", product.Title)
		c.JSON(http.StatusCreated, product)
	}
}
