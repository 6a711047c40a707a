package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/models"
)

// Error maps a domain error to its HTTP status and writes the usual
// {"error": ...} body. Stock conflicts carry the offending product so clients
// can point at the exact line item.
func Error(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var stockErr *models.InsufficientStockError

	switch {
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductTitle,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate value violates a uniqueness constraint"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
