package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

// Orders are immutable once created, so this package only ever reads them
// back; there are no update or delete endpoints.

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:orderID accepts the numeric id or the order number.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		query := db.
			Preload("Items").
			Preload("Items.Product").
			Where("user_id = ?", userID)
		// Numeric ids hit the primary key, anything else is an order number.
		if numericID, err := strconv.ParseUint(id, 10, 64); err == nil {
			query = query.Where("id = ?", numericID)
		} else {
			query = query.Where("order_number = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order":     order,
			"total_sum": order.TotalSum(),
		})
	}
}
