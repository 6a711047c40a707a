package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	categoryControllers "github.com/mkotelnikov-git/storefront-api/controllers/category"
	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/models"
)

const defaultPageSize = 6

// sortColumns whitelists what the sort_by query param may name.
var sortColumns = map[string]bool{
	"title":      true,
	"price":      true,
	"count":      true,
	"created_at": true,
}

// GetProducts lists products with optional title search, price range and
// category filter. Filtering by a category includes its whole subtree.
// Query params: search, category_id, min_price, max_price, sort_by, order,
// page, page_size.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")

		sortBy := c.DefaultQuery("sort_by", "created_at")
		if !sortColumns[sortBy] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).Preload("Category")

		if search != "" {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		if minPriceStr != "" {
			mp, err := decimal.NewFromString(minPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := decimal.NewFromString(maxPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		if categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			subtree, err := categoryControllers.DescendantIDs(db, uint(cid))
			if err != nil {
				httpx.Error(c, err)
				return
			}
			query = query.Where("category_id IN ?", subtree)
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
		if pageSize < 1 || pageSize > 100 {
			pageSize = defaultPageSize
		}

		var total int64
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		var products []models.Product
		if err := query.
			Order(sortBy + " " + sortOrder).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&products).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":  products,
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		})
	}
}
