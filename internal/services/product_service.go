package services

import (
	"go.uber.org/zap"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/rabbitmq"
)

// EventPublisher publishes product lifecycle events. A nil publisher
// disables publishing without affecting the store operations.
type EventPublisher interface {
	PublishProductEvent(event rabbitmq.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts returns products matching the filter. A single criterion
// is routed through the dedicated finder for that field; combined
// criteria go through the intersecting args query.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	if filter.Count() == 1 {
		switch {
		case filter.Description != "":
			return s.repo.FindByDescription(filter.Description)
		case filter.Name != "":
			return s.repo.FindByName(filter.Name)
		case filter.Available != nil:
			return s.repo.FindByAvailability(*filter.Available)
		case filter.Price != nil:
			return s.repo.FindByPrice(*filter.Price)
		}
	}
	if filter.IsZero() {
		return s.repo.All()
	}
	return s.repo.FindByArgs(filter)
}

// GetProduct retrieves a single product by its ID. A missing product is
// (nil, nil), not an error.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.Find(id)
}

// CreateProduct persists a new product and publishes a created event.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(rabbitmq.EventProductCreated, product)
	return nil
}

// UpdateProduct commits changes to an existing product and publishes an
// updated event.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(rabbitmq.EventProductUpdated, product)
	return nil
}

// DeleteProduct removes a product and publishes a deleted event.
func (s *ProductService) DeleteProduct(product *models.Product) error {
	if err := s.repo.Delete(product); err != nil {
		return err
	}
	s.publish(rabbitmq.EventProductDeleted, product)
	return nil
}

// CreateFromArgs constructs a product from the given mapping, persists
// it and returns it wrapped in a single-element slice. Any deserialize
// or storage failure propagates as a DataValidationError.
func (s *ProductService) CreateFromArgs(args map[string]interface{}) ([]models.Product, error) {
	zap.S().Infof("Creating product from args: %v", args)
	product := models.NewProduct()
	if err := product.Deserialize(args); err != nil {
		return nil, err
	}
	if err := s.CreateProduct(product); err != nil {
		return nil, err
	}
	return []models.Product{*product}, nil
}

// publish sends a lifecycle event. Publishing failures are logged and
// never surfaced to the caller; the mutation has already committed.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.NewProductEvent(eventType, product.Serialize())
	if err := s.publisher.PublishProductEvent(event); err != nil {
		zap.S().Warnf("Failed to publish %s event for product %d: %v", eventType, product.ID, err)
		return
	}
	zap.S().Debugf("Published %s event for product %d", eventType, product.ID)
}
