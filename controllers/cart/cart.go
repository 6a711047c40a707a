package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// getOrCreateCart materializes the user's cart on first access. Registration
// already creates one; this also covers users migrated from older data.
func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the user's cart. Adding a
// product already present increases its quantity; there is never more than
// one row per (cart, product). Stock is checked, not reserved.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, err
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Count {
			return nil, &models.InsufficientStockError{
				ProductTitle: product.Title,
				Requested:    quantity,
				Available:    product.Count,
			}
		}
		item = models.CartItem{
			CartID:    cart.CartID,
			ProductID: product.ID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		newQuantity := item.Quantity + quantity
		if newQuantity > product.Count {
			return nil, &models.InsufficientStockError{
				ProductTitle: product.Title,
				Requested:    newQuantity,
				Available:    product.Count,
			}
		}
		item.Quantity = newQuantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	item.Product = product
	return &item, nil
}

// UpdateItemQuantity sets the absolute quantity of a product already in the
// cart, bounded by current stock.
func UpdateItemQuantity(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, err
	}
	if quantity > product.Count {
		return nil, &models.InsufficientStockError{
			ProductTitle: product.Title,
			Requested:    quantity,
			Available:    product.Count,
		}
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error; err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.AddedAt = time.Now()
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}

	item.Product = product
	return &item, nil
}

// RemoveItem drops a product from the user's cart entirely.
func RemoveItem(db *gorm.DB, userID, productID uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearCart empties the user's cart without touching stock.
func ClearCart(db *gorm.DB, userID uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

// POST /user/cart
func AddItemHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			log.Debug("cart add rejected", "user_id", userID, "product_id", input.ProductID, "error", err)
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart
func UpdateItemHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateItemQuantity(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			log.Debug("cart update rejected", "user_id", userID, "product_id", input.ProductID, "error", err)
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:product_id
func RemoveItemHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := parseUintParam(c, "product_id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		if err := RemoveItem(db, userID, productID); err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := ClearCart(db, userID); err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetCartHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		if err := db.Preload("Items.Product").First(cart, cart.CartID).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       cart.Items,
			"total_price": cart.TotalPrice(),
		})
	}
}
