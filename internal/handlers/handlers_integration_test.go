package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"vollara/internal/config"
	"vollara/internal/handlers"
	"vollara/internal/services"
	"vollara/internal/store"
)

// setupApp builds a Fiber app over the in-memory store with all routes
// registered, mirroring the production wiring in main.go.
func setupApp(s store.Store) (*fiber.App, *services.ProductService) {
	cfg := &config.Config{DatabaseName: "vollara", Port: "8000"}

	productService := services.NewProductService(s)
	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler(s, cfg)

	app := fiber.New()
	healthHandler.RegisterRoutes(app)
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	return app, productService
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRootAndHelloEndpoints(t *testing.T) {
	app, _ := setupApp(store.NewMemory())

	var root map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/", &root))
	assert.Equal(t, "Vollara Products Backend is running", root["message"])

	var hello map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/hello", &hello))
	assert.Equal(t, "Hello from the backend API!", hello["message"])
}

func TestCreateThenFetchBySlug(t *testing.T) {
	app, _ := setupApp(store.NewMemory())

	newProduct := map[string]interface{}{
		"title":    "Air & Surface Pro",
		"price":    799.0,
		"category": "Air Purifier",
		"features": []string{"ActivePure Technology"},
	}
	resp := postJSON(t, app, "/api/products", newProduct)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "air-and-surface-pro", created["slug"])
	assert.Equal(t, "Vollara", created["brand"])
	assert.Equal(t, true, created["in_stock"])
	assert.Equal(t, 799.0, created["price"])

	var fetched map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/products/air-and-surface-pro", &fetched))
	assert.Equal(t, created["id"], fetched["id"])
	assert.Equal(t, newProduct["title"], fetched["title"])
	assert.Equal(t, newProduct["category"], fetched["category"])
}

func TestListProductsFilterAndLimit(t *testing.T) {
	memory := store.NewMemory()
	app, service := setupApp(memory)

	// Seed the fixed sample catalog: one Water product among three.
	assert.Equal(t, 3, service.Seed(context.Background()))

	var all []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/products", &all))
	assert.Len(t, all, 3)

	var water []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/products?category=Water", &water))
	assert.Len(t, water, 1)
	assert.Equal(t, "living-water", water[0]["slug"])

	var capped []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/products?limit=2", &capped))
	assert.Len(t, capped, 2)

	var none []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/products?category=Nonexistent", &none))
	assert.Empty(t, none)
}

func TestGetUnknownSlugReturnsNotFound(t *testing.T) {
	app, _ := setupApp(store.NewMemory())

	var body map[string]interface{}
	assert.Equal(t, http.StatusNotFound, getJSON(t, app, "/api/products/no-such-slug", &body))
	assert.Equal(t, "Product not found", body["message"])
}

func TestCreateProductValidationFailure(t *testing.T) {
	app, _ := setupApp(store.NewMemory())

	// Missing title and category; price negative. The API reports
	// validation failures as 500, its documented behavior.
	resp := postJSON(t, app, "/api/products", map[string]interface{}{"price": -5})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "Title")
	assert.Contains(t, errs, "Price")
	assert.Contains(t, errs, "Category")
}

func TestDiagnosticEndpointWithWorkingStore(t *testing.T) {
	memory := store.NewMemory()
	app, service := setupApp(memory)
	service.Seed(context.Background())

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/test", &body))
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "✅ Connected & Working", body["database"])
	assert.Equal(t, "Connected", body["connection_status"])
	collections := body["collections"].([]interface{})
	assert.Contains(t, collections, "product")
}

func TestDiagnosticEndpointNeverErrorsWhenStoreIsDown(t *testing.T) {
	degraded := store.Connect(context.Background(), "", "vollara")
	app, _ := setupApp(degraded)

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/test", &body))
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "❌ Not Available", body["database"])
	assert.Equal(t, "Not Connected", body["connection_status"])
}

func TestProductEndpointsFailWithDetailWhenStoreIsDown(t *testing.T) {
	degraded := store.Connect(context.Background(), "", "vollara")
	app, _ := setupApp(degraded)

	var body map[string]interface{}
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, app, "/api/products", &body))
	assert.Contains(t, body["error"], "unavailable")

	resp := postJSON(t, app, "/api/products", map[string]interface{}{
		"title":    "Thing",
		"price":    1.0,
		"category": "Water",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}
