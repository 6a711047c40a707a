package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/models"
)

type UpdateProductInput struct {
	Title      *string          `json:"title"`
	CategoryID *uint            `json:"category_id"`
	Count      *int             `json:"count"`
	Price      *decimal.Decimal `json:"price"`
}

// PUT /products/:id does a partial update; absent fields are left alone.
func UpdateProduct(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(id)).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			updates["category_id"] = *input.CategoryID
		}
		if input.Count != nil {
			if *input.Count < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "count must not be negative"})
				return
			}
			updates["count"] = *input.Count
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
				return
			}
			updates["price"] = *input.Price
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				httpx.Error(c, err)
				return
			}
		}

		log.Info("product updated", "product_id", product.ID)
		c.JSON(http.StatusOK, product)
	}
}
