package repositories

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// Each mutating call runs in its own scoped transaction; a failed commit
// is rolled back and surfaced as a DataValidationError.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create persists a new product row and populates its ID. Any ID already
// set on the entity is discarded first; the store assigns IDs, never the
// caller.
func (r *GORMProductRepository) Create(product *models.Product) error {
	zap.S().Infof("Creating %s", product.Name)
	product.ID = 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		zap.S().Errorf("Error creating record: %s", product)
		return models.WrapDataValidationError(err)
	}
	return nil
}

// Update commits the entity's in-memory field changes to its existing row.
func (r *GORMProductRepository) Update(product *models.Product) error {
	zap.S().Infof("Saving %s", product.Name)
	if product.ID == 0 {
		return models.NewDataValidationError("Update called with empty ID field")
	}
	if product.Price == nil || *product.Price < 0 {
		return models.NewDataValidationError("Price must be a positive number")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Save writes every column, including zero values such as
		// available=false.
		return tx.Save(product).Error
	})
	if err != nil {
		zap.S().Errorf("Error updating record: %s", product)
		return models.WrapDataValidationError(err)
	}
	return nil
}

// Delete removes the product's row. Deleting a row that no longer exists
// commits cleanly, keeping deletes idempotent for the caller.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	zap.S().Infof("Deleting %s", product.Name)
	if product.ID == 0 {
		return models.NewDataValidationError("Delete called with empty ID field")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(product).Error
	})
	if err != nil {
		zap.S().Errorf("Error deleting record: %s", product)
		return models.WrapDataValidationError(err)
	}
	return nil
}

// All returns every product row, in no particular order.
func (r *GORMProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Find returns the product with the given id, or (nil, nil) when no such
// row exists. A missing row is not an error.
func (r *GORMProductRepository) Find(id uint) (*models.Product, error) {
	zap.S().Debugf("Processing lookup for id %d", id)
	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return &product, nil
}

// FindByName returns all products with the given name.
func (r *GORMProductRepository) FindByName(name string) ([]models.Product, error) {
	zap.S().Debugf("Processing name query for %s", name)
	var products []models.Product
	if err := r.db.Where("name = ?", name).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products by name: %w", err)
	}
	return products, nil
}

// FindByDescription returns all products with the given description.
func (r *GORMProductRepository) FindByDescription(description string) ([]models.Product, error) {
	zap.S().Debugf("Processing description query for %s", description)
	var products []models.Product
	if err := r.db.Where("description = ?", description).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products by description: %w", err)
	}
	return products, nil
}

// FindByAvailability returns all products with the given availability.
func (r *GORMProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	zap.S().Debugf("Processing available query for %t", available)
	var products []models.Product
	if err := r.db.Where("available = ?", available).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products by availability: %w", err)
	}
	return products, nil
}

// FindByPrice returns all products with the given price.
func (r *GORMProductRepository) FindByPrice(price float64) ([]models.Product, error) {
	zap.S().Debugf("Processing price query for %v", price)
	var products []models.Product
	if err := r.db.Where("price = ?", price).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products by price: %w", err)
	}
	return products, nil
}

// FindByArgs intersects whichever criteria are present in the filter and
// returns all matching rows in a single query.
func (r *GORMProductRepository) FindByArgs(filter ProductFilter) ([]models.Product, error) {
	zap.S().Debugf("Finding products by args: %+v", filter)
	query := r.db.Model(&models.Product{})
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Description != "" {
		query = query.Where("description = ?", filter.Description)
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}
	if filter.Price != nil {
		query = query.Where("price = ?", *filter.Price)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products by args: %w", err)
	}
	return products, nil
}
