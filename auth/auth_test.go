package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	userControllers "github.com/mkotelnikov-git/storefront-api/controllers/user"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	log, err := logger.New("dev")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(db, log))
	r.POST("/auth/login", LoginHandler(db, log))

	protected := r.Group("/user")
	protected.Use(middleware.ValidateToken)
	protected.GET("", userControllers.GetUser(db))

	return db, r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"username": "alice",
	"email": "alice@example.com",
	"password": "correct-horse",
	"title": "Alice Trading LLC",
	"address": "1 Main St"
}`

func TestRegisterCreatesUserWithCart(t *testing.T) {
	db, r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	require.NotNil(t, user.Title)
	assert.Equal(t, "Alice Trading LLC", *user.Title)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	// The cart is born together with the user.
	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&carts).Error)
	assert.EqualValues(t, 1, carts)

	// The password hash never leaves the server.
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	dup := strings.Replace(registerBody, "Alice Trading LLC", "Other Org", 1)
	w = doJSON(r, http.MethodPost, "/auth/register", dup, "")
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRegisterDuplicateTitleConflicts(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	dup := strings.Replace(registerBody, `"username": "alice"`, `"username": "bob"`, 1)
	w = doJSON(r, http.MethodPost, "/auth/register", dup, "")
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestLoginAndTokenRoundtrip(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login",
		`{"username": "alice", "password": "wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login",
		`{"username": "alice", "password": "correct-horse"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The issued token authenticates the protected profile route.
	w = doJSON(r, http.MethodGet, "/user", "", resp.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)

	// No token, no profile.
	w = doJSON(r, http.MethodGet, "/user", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
