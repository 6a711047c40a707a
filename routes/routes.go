package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/mkotelnikov-git/storefront-api/controllers/order"
	"github.com/mkotelnikov-git/storefront-api/logger"
)

// SetupRoutes is the single entry point that wires up the auth, catalog,
// user and order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger, mailer *orderControllers.Mailer) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, log)

	// Public catalog browsing
	SetupCatalogRoutes(r, db, log)

	// JWT-protected user routes: profile, cart, checkout, order history
	SetupUserRoutes(r, db, log, mailer)
}
