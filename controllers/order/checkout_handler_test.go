package orderControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

// newCheckoutRouter fakes the auth middleware by injecting the user id
// directly; token handling has its own tests.
func newCheckoutRouter(t *testing.T, db *gorm.DB, userID uint) *gin.Engine {
	t.Helper()
	log, err := logger.New("dev")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/checkout", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, userID)
	}, CheckoutHandler(db, log, nil))
	r.GET("/user/orders", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, userID)
	}, GetUserOrdersHandler(db))
	r.GET("/user/orders/:orderID", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, userID)
	}, GetOrderHandler(db))
	return r
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	product := createProduct(t, db, "Laptop", 5, "10.00")
	addToCart(t, db, user, product, 3)
	r := newCheckoutRouter(t, db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/user/checkout", nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderNumber string `json:"order_number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderNumber)

	// The order shows up in the history, newest first.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, resp.OrderNumber, orders[0].OrderNumber)

	// Lookup by order number works too.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/orders/"+resp.OrderNumber, nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	r := newCheckoutRouter(t, db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/user/checkout", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCheckoutHandlerInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	product := createProduct(t, db, "Laptop", 5, "10.00")
	addToCart(t, db, user, product, 3)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("count", 1).Error)
	r := newCheckoutRouter(t, db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/user/checkout", nil))
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var resp struct {
		Product   string `json:"product"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Laptop", resp.Product)
	assert.Equal(t, 3, resp.Requested)
	assert.Equal(t, 1, resp.Available)
}

func TestGetOrderHandlerUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	r := newCheckoutRouter(t, db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/orders/123", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
