package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderControllers "github.com/mkotelnikov-git/storefront-api/controllers/order"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/models"
	"github.com/mkotelnikov-git/storefront-api/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting storefront-api")

	db := initDatabase(log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal("auto-migrate failed", "error", err)
	}

	if os.Getenv("APP_ENV") == "prod" || os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	mailer := orderControllers.NewMailerFromEnv()
	if mailer == nil {
		log.Info("SENDGRID_API_KEY not set, order confirmation emails disabled")
	}

	routes.SetupRoutes(r, db, log, mailer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("server listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server failed", "error", err)
	}
}

// initDatabase sets up the GORM DB connection.
func initDatabase(log *logger.Logger) *gorm.DB {
	// TranslateError turns driver-specific uniqueness violations into
	// gorm.ErrDuplicatedKey so handlers can map them to conflicts.
	cfg := &gorm.Config{TranslateError: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), cfg)
		if err != nil {
			log.Fatal("db connection failed", "error", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		log.Fatal("db connection failed", "error", err)
	}
	return db
}
