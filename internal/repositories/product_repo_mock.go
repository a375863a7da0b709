package repositories

import (
	"sync"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository. It honors the same contract as the GORM
// implementation so it can stand in for it during tests and local runs.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// Create stores a new product, assigning the next sequential ID.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update replaces the stored copy of an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		return models.NewDataValidationError("Update called with empty ID field")
	}
	if product.Price == nil || *product.Price < 0 {
		return models.NewDataValidationError("Price must be a positive number")
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product. Removing an absent product is a no-op.
func (r *MockProductRepository) Delete(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		return models.NewDataValidationError("Delete called with empty ID field")
	}
	delete(r.products, product.ID)
	return nil
}

// All returns all stored products.
func (r *MockProductRepository) All() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// Find returns a stored product by ID, or (nil, nil) when absent.
func (r *MockProductRepository) Find(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// FindByName returns all stored products with the given name.
func (r *MockProductRepository) FindByName(name string) ([]models.Product, error) {
	return r.FindByArgs(ProductFilter{Name: name})
}

// FindByDescription returns all stored products with the given description.
func (r *MockProductRepository) FindByDescription(description string) ([]models.Product, error) {
	return r.FindByArgs(ProductFilter{Description: description})
}

// FindByAvailability returns all stored products with the given availability.
func (r *MockProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	return r.FindByArgs(ProductFilter{Available: &available})
}

// FindByPrice returns all stored products with the given price.
func (r *MockProductRepository) FindByPrice(price float64) ([]models.Product, error) {
	return r.FindByArgs(ProductFilter{Price: &price})
}

// FindByArgs returns all stored products matching every present criterion.
func (r *MockProductRepository) FindByArgs(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		if filter.Name != "" && p.Name != filter.Name {
			continue
		}
		if filter.Description != "" && p.Description != filter.Description {
			continue
		}
		if filter.Available != nil && p.Available != *filter.Available {
			continue
		}
		if filter.Price != nil && (p.Price == nil || *p.Price != *filter.Price) {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}
