package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultBrand is applied when a create request omits the brand field entirely.
const DefaultBrand = "Vollara"

// Product represents a catalog product document.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	InStock     bool               `json:"in_stock" bson:"in_stock"`
	SKU         string             `json:"sku,omitempty" bson:"sku,omitempty"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Features    []string           `json:"features,omitempty" bson:"features,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	Brand       string             `json:"brand" bson:"brand"`
}

// Document converts the product to the map shape the store adapter accepts.
// The ID is left out; the store assigns it on insert.
func (p *Product) Document() bson.M {
	doc := bson.M{
		"title":    p.Title,
		"price":    p.Price,
		"category": p.Category,
		"in_stock": p.InStock,
		"slug":     p.Slug,
		"brand":    p.Brand,
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.SKU != "" {
		doc["sku"] = p.SKU
	}
	if len(p.Images) > 0 {
		doc["images"] = p.Images
	}
	if len(p.Features) > 0 {
		doc["features"] = p.Features
	}
	return doc
}

// CreateProductRequest is the request body for creating a product.
// Pointer fields distinguish an absent field from its zero value so
// defaults only apply when the field is missing.
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"in_stock"`
	SKU         string   `json:"sku"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	Slug        string   `json:"slug"`
	Brand       *string  `json:"brand"`
}

// Product builds a validated Product from the request, applying defaults
// and deriving the slug from the title when none is supplied.
func (r *CreateProductRequest) Product(validate *validator.Validate) (*Product, error) {
	if err := validate.Struct(r); err != nil {
		return nil, newValidationError(err)
	}

	p := &Product{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		Category:    r.Category,
		InStock:     true,
		SKU:         r.SKU,
		Images:      r.Images,
		Features:    r.Features,
		Slug:        r.Slug,
		Brand:       DefaultBrand,
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	if r.Brand != nil {
		p.Brand = *r.Brand
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return p, nil
}

// Slugify derives a URL-safe slug from a product title: lower-cased,
// trimmed, spaces become hyphens, ampersands become "and".
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "&", "and")
	return s
}

// ValidationError reports the input fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(err error) *ValidationError {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		fields["input"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}
