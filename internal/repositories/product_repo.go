package repositories

import (
	"catalog/internal/models"
)

// ProductFilter is an equality-filter criteria set for product queries.
// Name and Description are ignored when empty; Available and Price are
// ignored when nil, so false and 0 remain valid criteria.
type ProductFilter struct {
	Name        string
	Description string
	Available   *bool
	Price       *float64
}

// IsZero reports whether no criteria are set.
func (f ProductFilter) IsZero() bool {
	return f.Count() == 0
}

// Count returns the number of criteria that are set.
func (f ProductFilter) Count() int {
	n := 0
	if f.Name != "" {
		n++
	}
	if f.Description != "" {
		n++
	}
	if f.Available != nil {
		n++
	}
	if f.Price != nil {
		n++
	}
	return n
}

// ProductRepository defines the interface for product data access.
// Find returns (nil, nil) when no row matches; mutation failures come
// back as *models.DataValidationError with the storage cause wrapped.
type ProductRepository interface {
	All() ([]models.Product, error)
	Find(id uint) (*models.Product, error)
	FindByName(name string) ([]models.Product, error)
	FindByDescription(description string) ([]models.Product, error)
	FindByAvailability(available bool) ([]models.Product, error)
	FindByPrice(price float64) ([]models.Product, error)
	FindByArgs(filter ProductFilter) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(product *models.Product) error
}
