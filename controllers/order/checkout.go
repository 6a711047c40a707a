package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

// generateOrderNumber returns the human-facing order identifier. The unique
// index on orders.order_number is the authority; a collision rolls the
// checkout back and surfaces as a conflict.
func generateOrderNumber() string {
	return uuid.NewString()
}

// decrementStock takes quantity off the product row only if enough stock
// remains. The product struct may hold a stale count read by a loser of a
// concurrent checkout; the WHERE clause decides, not the earlier read.
func decrementStock(tx *gorm.DB, product *models.Product, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND count >= ?", product.ID, quantity).
		UpdateColumn("count", gorm.Expr("count - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.Product
		if err := tx.First(&current, product.ID).Error; err != nil {
			return err
		}
		return &models.InsufficientStockError{
			ProductTitle: product.Title,
			Requested:    quantity,
			Available:    current.Count,
		}
	}
	return nil
}

// Checkout converts the user's cart into an order: one OrderItem per
// CartItem with the price frozen at the current value, stock decremented by
// the purchased quantity, and the cart emptied. All of it commits or none of
// it does; on any error the cart is left exactly as it was.
func Checkout(db *gorm.DB, userID uint) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		orderItems := make([]models.OrderItem, 0, len(cart.Items))

		for _, item := range cart.Items {
			q := tx
			// SELECT ... FOR UPDATE only exists on postgres; sqlite
			// serializes writers on its own.
			if tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var product models.Product
			if err := q.First(&product, item.ProductID).Error; err != nil {
				return err
			}

			// Stock may have changed since the item went into the cart.
			if item.Quantity > product.Count {
				return &models.InsufficientStockError{
					ProductTitle: product.Title,
					Requested:    item.Quantity,
					Available:    product.Count,
				}
			}

			if err := decrementStock(tx, &product, item.Quantity); err != nil {
				return err
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID:  product.ID,
				CategoryID: product.CategoryID,
				Quantity:   item.Quantity,
				Price:      product.Price, // frozen copy, never the live value
			})
		}

		order = models.Order{
			OrderNumber: generateOrderNumber(),
			UserID:      userID,
			Items:       orderItems,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /user/checkout
func CheckoutHandler(db *gorm.DB, log *logger.Logger, mailer *Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := Checkout(db, userID)
		if err != nil {
			log.Info("checkout rejected", "user_id", userID, "error", err)
			httpx.Error(c, err)
			return
		}
		log.Info("order placed",
			"user_id", userID,
			"order_number", order.OrderNumber,
			"items", len(order.Items),
		)

		// Post-commit side effects. Neither may fail the checkout.
		broadcastNewOrder(log, order)
		if mailer != nil {
			var user models.User
			if err := db.First(&user, userID).Error; err == nil {
				go func(email string, order models.Order) {
					if err := mailer.SendOrderConfirmation(email, &order); err != nil {
						log.Warn("order confirmation email failed",
							"order_number", order.OrderNumber, "error", err)
					}
				}(user.Email, *order)
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_number": order.OrderNumber,
			"order":        order,
		})
	}
}
