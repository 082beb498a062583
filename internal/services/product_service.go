package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"vollara/internal/models"
	"vollara/internal/store"
)

// ProductCollection is the store collection holding product documents.
const ProductCollection = "product"

// ProductService handles business logic related to products: input
// validation, defaulting, slug derivation, and the store round-trips.
type ProductService struct {
	store    store.Store
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(s store.Store) *ProductService {
	return &ProductService{
		store:    s,
		validate: validator.New(),
	}
}

// List returns products as wire records, optionally filtered by exact
// category match and capped by limit (zero or less means unbounded).
func (s *ProductService) List(ctx context.Context, category string, limit int64) ([]map[string]interface{}, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	docs, err := s.store.Find(ctx, ProductCollection, filter, limit)
	if err != nil {
		return nil, err
	}
	records := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		records = append(records, store.ToWire(doc))
	}
	return records, nil
}

// GetBySlug returns the first product with the given slug, or
// store.ErrNotFound.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (map[string]interface{}, error) {
	doc, err := s.store.FindOne(ctx, ProductCollection, bson.M{"slug": slug})
	if err != nil {
		return nil, err
	}
	return store.ToWire(doc), nil
}

// Create validates the request, applies defaults and slug derivation,
// inserts the document, and returns the persisted record with its
// assigned id.
func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (map[string]interface{}, error) {
	product, err := req.Product(s.validate)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, ProductCollection, product.Document())
	if err != nil {
		return nil, err
	}

	oid, err := store.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("store returned malformed id %q: %w", id, err)
	}
	doc, err := s.store.FindOne(ctx, ProductCollection, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return store.ToWire(doc), nil
}

// Seed inserts the fixed sample catalog when the product collection is
// empty. It is best-effort: every error is swallowed so startup never
// blocks on the store. Returns the number of products inserted.
func (s *ProductService) Seed(ctx context.Context) int {
	existing, err := s.store.Find(ctx, ProductCollection, bson.M{}, 1)
	if err != nil {
		log.Printf("Skipping product seeding: %v", err)
		return 0
	}
	if len(existing) > 0 {
		return 0
	}

	seeded := 0
	for _, req := range sampleProducts() {
		if _, err := s.Create(ctx, req); err != nil {
			log.Printf("Error seeding product %q: %v", req.Title, err)
			continue
		}
		seeded++
	}
	return seeded
}

func sampleProducts() []models.CreateProductRequest {
	price := func(v float64) *float64 { return &v }
	return []models.CreateProductRequest{
		{
			Title:       "Air & Surface Pro",
			Slug:        "air-and-surface-pro",
			Description: "Advanced active air and surface purification for homes and businesses.",
			Price:       price(799.0),
			Category:    "Air Purifier",
			Images: []string{
				"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=1200&q=80&auto=format&fit=crop",
			},
			Features: []string{
				"ActivePure Technology",
				"Covers large areas",
				"Whisper-quiet operation",
			},
		},
		{
			Title:       "FreshAir Personal",
			Slug:        "freshair-personal",
			Description: "Wearable personal air purifier for on-the-go protection.",
			Price:       price(199.0),
			Category:    "Wearable",
			Images: []string{
				"https://images.unsplash.com/photo-1505740106531-4243f3831c78?w=1200&q=80&auto=format&fit=crop",
			},
			Features: []string{
				"Lightweight and portable",
				"USB rechargeable",
				"Personal clean-air zone",
			},
		},
		{
			Title:       "Hydration System",
			Slug:        "living-water",
			Description: "At-home water ionization and filtration for better-tasting water.",
			Price:       price(1299.0),
			Category:    "Water",
			Images: []string{
				"https://images.unsplash.com/photo-1548839140-29a749e1cf4d?w=1200&q=80&auto=format&fit=crop",
			},
			Features: []string{
				"Multiple pH levels",
				"Advanced filtration",
				"Easy-install countertop",
			},
		},
	}
}
