package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"vollara/internal/config"
	"vollara/internal/handlers"
	"vollara/internal/services"
	"vollara/internal/store"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Document Store ---
	// Connection problems leave the adapter in a degraded state; the
	// process always starts and reports store health on /test.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	documentStore := store.Connect(connectCtx, cfg.DatabaseURL, cfg.DatabaseName)
	cancel()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := documentStore.Close(closeCtx); err != nil {
			log.Printf("Error closing store connection: %v", err)
		}
	}()

	// --- Services ---
	productService := services.NewProductService(documentStore)

	// --- Seeding ---
	// One-shot, best-effort: runs before traffic is accepted and never
	// blocks startup on store failures.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 15*time.Second)
	if n := productService.Seed(seedCtx); n > 0 {
		log.Printf("Seeded %d sample products", n)
	}
	cancelSeed()

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler(documentStore, cfg)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "*",
	}))

	// --- Routes ---
	healthHandler.RegisterRoutes(app)
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// --- Start HTTP Server ---
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
