package categoryControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mkotelnikov-git/storefront-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func createCategory(t *testing.T, db *gorm.DB, title string, parent *models.Category) *models.Category {
	t.Helper()
	category := models.Category{Title: title}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func TestDescendantIDs(t *testing.T) {
	db := setupTestDB(t)

	electronics := createCategory(t, db, "Electronics", nil)
	laptops := createCategory(t, db, "Laptops", electronics)
	gaming := createCategory(t, db, "Gaming", laptops)
	phones := createCategory(t, db, "Phones", electronics)
	books := createCategory(t, db, "Books", nil)

	ids, err := DescendantIDs(db, electronics.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{electronics.ID, laptops.ID, gaming.ID, phones.ID}, ids)

	ids, err = DescendantIDs(db, laptops.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{laptops.ID, gaming.ID}, ids)

	ids, err = DescendantIDs(db, books.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{books.ID}, ids)
}

func TestDescendantIDsUnknownRoot(t *testing.T) {
	db := setupTestDB(t)
	createCategory(t, db, "Electronics", nil)

	_, err := DescendantIDs(db, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDescendantIDsSurvivesParentCycle(t *testing.T) {
	db := setupTestDB(t)

	a := createCategory(t, db, "A", nil)
	b := createCategory(t, db, "B", a)

	// Nothing stops a parent edge looping back; the walk must still finish.
	require.NoError(t, db.Model(&models.Category{}).
		Where("id = ?", a.ID).Update("parent_id", b.ID).Error)

	ids, err := DescendantIDs(db, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)
}

func TestTree(t *testing.T) {
	db := setupTestDB(t)

	electronics := createCategory(t, db, "Electronics", nil)
	laptops := createCategory(t, db, "Laptops", electronics)
	createCategory(t, db, "Gaming", laptops)
	createCategory(t, db, "Phones", electronics)
	createCategory(t, db, "Books", nil)

	roots, err := Tree(db)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	// Roots and children come back sorted by title.
	assert.Equal(t, "Books", roots[0].Title)
	assert.Equal(t, "Electronics", roots[1].Title)

	children := roots[1].Children
	require.Len(t, children, 2)
	assert.Equal(t, "Laptops", children[0].Title)
	assert.Equal(t, "Phones", children[1].Title)

	require.Len(t, children[0].Children, 1)
	assert.Equal(t, "Gaming", children[0].Children[0].Title)
}

func TestTreeDuplicateTitlesAcrossParents(t *testing.T) {
	db := setupTestDB(t)

	dell := createCategory(t, db, "Dell", nil)
	hp := createCategory(t, db, "HP", nil)
	// Same subcategory name under both brands is legal.
	createCategory(t, db, `15"`, dell)
	createCategory(t, db, `15"`, hp)

	roots, err := Tree(db)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[1].Children, 1)
	assert.Equal(t, roots[0].Children[0].Title, roots[1].Children[0].Title)
}
