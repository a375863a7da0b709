package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// setupRepo opens a fresh in-memory sqlite database for the test and
// returns a repository over it.
func setupRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return repositories.NewGORMProductRepository(db)
}

func seedProduct(t *testing.T, repo *repositories.GORMProductRepository, name, description string, price float64, available bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       floatPtr(price),
		Available:   available,
	}
	require.NoError(t, repo.Create(product))
	return product
}

func TestCreateAssignsID(t *testing.T) {
	repo := setupRepo(t)

	product := models.NewProduct()
	product.Name = "toothbrush"
	product.Description = "toothbrush"
	product.Price = floatPtr(10.12)

	err := repo.Create(product)

	assert.NoError(t, err)
	assert.NotZero(t, product.ID)

	found, err := repo.Find(product.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, product.Description, found.Description)
	assert.Equal(t, *product.Price, *found.Price)
	assert.Equal(t, product.Available, found.Available)
}

func TestCreateDiscardsClientID(t *testing.T) {
	repo := setupRepo(t)

	product := &models.Product{ID: 4242, Name: "gadget", Available: true}
	err := repo.Create(product)

	assert.NoError(t, err)
	assert.NotEqual(t, uint(4242), product.ID, "the store assigns ids, never the client")
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	repo := setupRepo(t)

	first := seedProduct(t, repo, "widget", "", 1.0, true)
	second := seedProduct(t, repo, "widget", "", 1.0, true)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateProduct(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "toothbrush", "old", 10.12, true)
	originalID := product.ID

	product.Description = "toothbrush"
	err := repo.Update(product)

	assert.NoError(t, err)
	assert.Equal(t, originalID, product.ID)

	found, err := repo.Find(originalID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "toothbrush", found.Description)
}

func TestUpdatePersistsAvailableFalse(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "toothbrush", "", 10.12, true)
	product.Available = false

	require.NoError(t, repo.Update(product))

	found, err := repo.Find(product.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Available)
}

func TestUpdateWithoutID(t *testing.T) {
	repo := setupRepo(t)

	product := models.NewProduct()
	product.Name = "toothbrush"
	product.Price = floatPtr(10.12)

	err := repo.Update(product)

	var validationErr *models.DataValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Update called with empty ID field", err.Error())

	all, listErr := repo.All()
	assert.NoError(t, listErr)
	assert.Empty(t, all, "a failed update must not change stored state")
}

func TestUpdateNegativePrice(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "toothbrush", "", 10.12, true)
	product.Price = floatPtr(-1)

	err := repo.Update(product)

	var validationErr *models.DataValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Price must be a positive number", err.Error())
}

func TestUpdateNilPrice(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "toothbrush", "", 10.12, true)
	product.Price = nil

	err := repo.Update(product)

	var validationErr *models.DataValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Price must be a positive number", err.Error())
}

func TestDeleteProduct(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "toothbrush", "", 10.12, true)
	id := product.ID

	assert.NoError(t, repo.Delete(product))

	found, err := repo.Find(id)
	assert.NoError(t, err)
	assert.Nil(t, found)

	all, err := repo.All()
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteNonExistentProduct(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Delete(&models.Product{ID: 4242, Name: "ghost"})

	assert.NoError(t, err, "deleting a missing row still commits cleanly")
}

func TestFindAbsent(t *testing.T) {
	repo := setupRepo(t)

	found, err := repo.Find(999)

	assert.NoError(t, err, "a missing row is not an error")
	assert.Nil(t, found)
}

func TestAllProducts(t *testing.T) {
	repo := setupRepo(t)

	all, err := repo.All()
	assert.NoError(t, err)
	assert.Empty(t, all)

	for i := 0; i < 5; i++ {
		seedProduct(t, repo, fmt.Sprintf("item-%d", i), "", float64(i), true)
	}

	all, err = repo.All()
	assert.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestFindByName(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "widget", "", 9.99, true)
	seedProduct(t, repo, "widget", "", 9.99, true)
	seedProduct(t, repo, "gadget", "", 19.99, false)

	matches, err := repo.FindByName("widget")

	assert.NoError(t, err)
	assert.Len(t, matches, 2)
	for _, p := range matches {
		assert.Equal(t, "widget", p.Name)
	}
}

func TestFindByDescription(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "widget", "shiny", 9.99, true)
	seedProduct(t, repo, "gadget", "dull", 19.99, false)

	matches, err := repo.FindByDescription("shiny")

	assert.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "widget", matches[0].Name)
}

func TestFindByAvailability(t *testing.T) {
	repo := setupRepo(t)

	for i := 0; i < 10; i++ {
		seedProduct(t, repo, fmt.Sprintf("item-%d", i), "", float64(i), i%3 == 0)
	}

	available, err := repo.FindByAvailability(true)
	assert.NoError(t, err)
	unavailable, err := repo.FindByAvailability(false)
	assert.NoError(t, err)

	all, err := repo.All()
	assert.NoError(t, err)
	assert.Equal(t, len(all), len(available)+len(unavailable),
		"availability results must partition the table")
	for _, p := range available {
		assert.True(t, p.Available)
	}
	for _, p := range unavailable {
		assert.False(t, p.Available)
	}
}

func TestFindByPrice(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "widget", "", 9.99, true)
	seedProduct(t, repo, "gadget", "", 19.99, false)

	matches, err := repo.FindByPrice(19.99)

	assert.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "gadget", matches[0].Name)
}

func TestFindByArgs(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "Widget", "", 9.99, true)
	seedProduct(t, repo, "Widget", "", 9.99, true)
	seedProduct(t, repo, "Gadget", "", 19.99, false)

	matches, err := repo.FindByArgs(repositories.ProductFilter{
		Name:      "Widget",
		Price:     floatPtr(9.99),
		Available: boolPtr(true),
	})

	assert.NoError(t, err)
	assert.Len(t, matches, 2)
	for _, p := range matches {
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, 9.99, *p.Price)
		assert.True(t, p.Available)
	}
}

func TestFindByArgsAvailableFalse(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "Widget", "", 9.99, true)
	seedProduct(t, repo, "Gadget", "", 19.99, false)

	matches, err := repo.FindByArgs(repositories.ProductFilter{Available: boolPtr(false)})

	assert.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Gadget", matches[0].Name)
}

func TestFindByArgsEmptyFilterReturnsAll(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "Widget", "", 9.99, true)
	seedProduct(t, repo, "Gadget", "", 19.99, false)

	matches, err := repo.FindByArgs(repositories.ProductFilter{})

	assert.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMockRepositoryMatchesContract(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := models.NewProduct()
	product.Name = "toothbrush"
	product.Price = floatPtr(10.12)
	require.NoError(t, repo.Create(product))
	assert.NotZero(t, product.ID)

	err := repo.Update(&models.Product{Name: "loose", Price: floatPtr(1)})
	var validationErr *models.DataValidationError
	assert.ErrorAs(t, err, &validationErr)

	found, err := repo.Find(product.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "toothbrush", found.Name)

	missing, err := repo.Find(999)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	matches, err := repo.FindByArgs(repositories.ProductFilter{Name: "toothbrush", Price: floatPtr(10.12)})
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}
