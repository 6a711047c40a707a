package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/mkotelnikov-git/storefront-api/controllers/cart"
	orderControllers "github.com/mkotelnikov-git/storefront-api/controllers/order"
	userControllers "github.com/mkotelnikov-git/storefront-api/controllers/user"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger, mailer *orderControllers.Mailer) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("", userControllers.GetUser(db))    // GET /user
		userGroup.PUT("", userControllers.UpdateUser(db)) // PUT /user

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCartHandler(db, log))                      // GET /user/cart
			cartGroup.POST("", cartControllers.AddItemHandler(db, log))                     // POST /user/cart
			cartGroup.PUT("", cartControllers.UpdateItemHandler(db, log))                   // PUT /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.RemoveItemHandler(db, log))    // DELETE /user/cart/:product_id
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db, log))                 // DELETE /user/cart
		}

		// ──────────────── Checkout & Orders ────────────────
		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db, log, mailer)) // POST /user/checkout
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))            // GET /user/orders
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderHandler(db))        // GET /user/orders/:orderID
	}

	// Order feed for dashboards; every placed order is pushed here.
	r.GET("/ws/orders", orderControllers.OrderFeedHandler)
}
