package categoryControllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkotelnikov-git/storefront-api/httpx"
	"github.com/mkotelnikov-git/storefront-api/logger"
	"github.com/mkotelnikov-git/storefront-api/models"
)

// CategoryTreeNode is the nested representation served to clients. The flat
// rows stay in models.Category; this is assembled per request from a single
// query over the whole table.
type CategoryTreeNode struct {
	ID       uint                `json:"id"`
	Title    string              `json:"title"`
	ParentID *uint               `json:"parent_id,omitempty"`
	Children []*CategoryTreeNode `json:"children"`
}

// DescendantIDs returns the ids of the subtree rooted at rootID, root
// included. Nothing at the storage layer forbids a parent edge that loops
// back, so the walk keeps a visited set instead of trusting the data.
func DescendantIDs(db *gorm.DB, rootID uint) ([]uint, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}

	children := make(map[uint][]uint, len(categories))
	exists := make(map[uint]bool, len(categories))
	for _, cat := range categories {
		exists[cat.ID] = true
		if cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat.ID)
		}
	}
	if !exists[rootID] {
		return nil, gorm.ErrRecordNotFound
	}

	ids := []uint{rootID}
	visited := map[uint]bool{rootID: true}
	for queue := []uint{rootID}; len(queue) > 0; queue = queue[1:] {
		for _, child := range children[queue[0]] {
			if visited[child] {
				continue
			}
			visited[child] = true
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids, nil
}

// Tree assembles the whole category forest. Children are sorted by title at
// every level; nodes whose parent is missing are promoted to roots rather
// than dropped.
func Tree(db *gorm.DB) ([]*CategoryTreeNode, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}

	nodes := make(map[uint]*CategoryTreeNode, len(categories))
	for _, cat := range categories {
		nodes[cat.ID] = &CategoryTreeNode{
			ID:       cat.ID,
			Title:    cat.Title,
			ParentID: cat.ParentID,
			Children: []*CategoryTreeNode{},
		}
	}

	var roots []*CategoryTreeNode
	for _, cat := range categories {
		node := nodes[cat.ID]
		if cat.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*cat.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots, nil
}

func sortNodes(nodes []*CategoryTreeNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Title < nodes[j].Title })
}

// -------- Handlers --------

type CategoryInput struct {
	Title    string `json:"title" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// GET /categories
func GetCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tree, err := Tree(db)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

// GET /categories/:id returns the subtree rooted at id as a flat category plus
// its descendant ids, which is what the product filter consumes.
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(id)).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		descendants, err := DescendantIDs(db, category.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"category":       category,
			"descendant_ids": descendants,
		})
	}
}

// POST /categories
func CreateCategoryHandler(db *gorm.DB, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.ParentID != nil {
			var parent models.Category
			if err := db.First(&parent, *input.ParentID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Parent category does not exist"})
				return
			}
		}

		category := models.Category{Title: input.Title, ParentID: input.ParentID}
		if err := db.Create(&category).Error; err != nil {
			httpx.Error(c, err)
			return
		}

		log.Info("category created", "category_id", category.ID, "title", category.Title)
		c.JSON(http.StatusCreated, category)
	}
}
