package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/", h.HandleCollectionPut)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists products, optionally filtered by name,
// description, available and price query parameters. All present
// filters are intersected.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Name:        c.Query("name"),
		Description: c.Query("description"),
	}

	if raw := c.Query("available"); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			available := true
			filter.Available = &available
		case "false":
			available := false
			filter.Available = &available
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid value for 'available'. Must be 'true' or 'false'.",
			})
		}
	}

	if raw := c.Query("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid value for 'price'. Must be a number.",
			})
		}
		filter.Price = &price
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		zap.S().Errorf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}

	results := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	zap.S().Infof("Returning %d products", len(results))
	return c.JSON(results)
}

// HandleCreateProduct creates a product from the posted JSON body and
// responds 201 with a Location header pointing at the new resource.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if err := checkContentType(c); err != nil {
		return unsupportedMediaType(c, err)
	}

	data, err := parseBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	product := models.NewProduct()
	if err := product.Deserialize(data); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, err)
	}

	if err := h.service.CreateProduct(product); err != nil {
		return storeError(c, err)
	}
	zap.S().Infof("Product with new id [%d] saved", product.ID)

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/v1/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, c.Params("id"))
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		zap.S().Errorf("Error retrieving product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	if product == nil {
		return notFound(c, c.Params("id"))
	}
	return c.JSON(product.Serialize())
}

// HandleUpdateProduct updates an existing product from the posted JSON body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if err := checkContentType(c); err != nil {
		return unsupportedMediaType(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, c.Params("id"))
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		zap.S().Errorf("Error retrieving product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	if product == nil {
		return notFound(c, c.Params("id"))
	}

	data, err := parseBody(c)
	if err != nil {
		return badRequest(c, err)
	}
	if err := product.Deserialize(data); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, err)
	}

	if err := h.service.UpdateProduct(product); err != nil {
		return storeError(c, err)
	}
	return c.JSON(product.Serialize())
}

// HandleDeleteProduct deletes a product by its ID. The delete is
// idempotent: a missing product still yields 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		// A path segment that is not a valid id addresses no resource.
		return notFound(c, c.Params("id"))
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		zap.S().Errorf("Error retrieving product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}
	if product != nil {
		if err := h.service.DeleteProduct(product); err != nil {
			zap.S().Errorf("Error deleting product %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete product",
			})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCollectionPut rejects PUT against the collection endpoint.
func (h *ProductHandler) HandleCollectionPut(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"message": "Method not allowed",
	})
}

// parseBody decodes the request body into a generic mapping so that
// Deserialize can report missing keys and wrong types per field.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return nil, models.NewDataValidationError(
			"Invalid product: body of request contained bad or no data " + err.Error())
	}
	return data, nil
}

// checkContentType enforces application/json on body-bearing requests.
// It only validates; the caller writes the 415 response.
func checkContentType(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		zap.S().Error("No Content-Type specified")
		return errors.New("Content-Type must be application/json")
	}
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		zap.S().Errorf("Invalid Content-Type: %s", contentType)
		return errors.New("Content-Type must be application/json")
	}
	return nil
}

func unsupportedMediaType(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"message": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": err.Error(),
	})
}

func notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with id '%s' was not found.", id),
	})
}

// storeError maps store failures to status codes: domain validation
// errors are the client's fault, anything else is ours.
func storeError(c *fiber.Ctx, err error) error {
	var validationErr *models.DataValidationError
	if errors.As(err, &validationErr) {
		return badRequest(c, err)
	}
	zap.S().Errorf("Unexpected store error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": err.Error(),
	})
}
