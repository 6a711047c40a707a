package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/middleware"
	"github.com/mkotelnikov-git/storefront-api/models"
)

const tokenTTL = 72 * time.Hour

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Address   string `json:"address"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates the user together with their cart. Every user owns
// exactly one cart for their whole lifetime, so it is born here.
func RegisterHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     input.Username,
			Email:        input.Email,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Address:      input.Address,
			PasswordHash: string(hash),
		}
		if input.Title != "" {
			user.Title = &input.Title
		}

		// The cart row is created explicitly: gorm skips a zero-value
		// has-one association on Create, which would leave the user cartless.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			user.Cart = models.Cart{UserID: user.ID}
			return tx.Create(&user.Cart).Error
		})
		if err != nil {
			log.Warn("user registration failed", "username", input.Username, "error", err)
			httpx.Error(c, err)
			return
		}

		log.Info("user registered", "user_id", user.ID, "username", user.Username)
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler verifies credentials and issues a signed token carrying the
// user id claim the middleware expects.
func LoginHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			middleware.ContextUserKey: user.ID,
			"exp":                     time.Now().Add(tokenTTL).Unix(),
		})
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			log.Error("token signing failed", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		log.Info("user logged in", "user_id", user.ID)
		c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
	}
}
