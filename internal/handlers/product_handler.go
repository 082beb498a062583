package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"vollara/internal/models"
	"vollara/internal/services"
	"vollara/internal/store"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:slug", h.HandleGetProductBySlug)
	productRoutes.Post("/", h.HandleCreateProduct)
}

// HandleListProducts retrieves products, optionally filtered by exact
// category and capped by a positive limit.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	limit := int64(c.QueryInt("limit", 0))
	if limit < 0 {
		limit = 0
	}

	records, err := h.service.List(c.Context(), category, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(records)
}

// HandleGetProductBySlug retrieves a single product by its slug.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	record, err := h.service.GetBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product by slug %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(record)
}

// HandleCreateProduct creates a new product and returns the persisted
// record with its assigned id.
//
// Validation failures return 500 rather than a 4xx, matching the
// documented behavior of this API.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	record, err := h.service.Create(c.Context(), req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}
