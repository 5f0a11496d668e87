// Package routes wires handlers, services and middleware onto the Fiber app.
package routes

import (
	"campuskart/internal/handlers"
	"campuskart/internal/middleware"
	"campuskart/internal/repositories"
	"campuskart/internal/services/auth"
	"campuskart/internal/services/mailer"
	"campuskart/internal/services/product"
	"campuskart/internal/services/storage"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes. This is the composition
// root: repositories, services and handlers are assembled here.
func SetupRoutes(app *fiber.App, mail mailer.Mailer, uploader storage.Uploader) {
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	otpRepo := repositories.NewOtpRepository(repositories.DB)
	productRepo := repositories.NewProductRepository(repositories.DB, repositories.CacheService)

	authService := auth.NewService(userRepo, otpRepo, mail)
	productService := product.NewService(productRepo, uploader)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public auth endpoints
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify", authHandler.VerifyOtp)

	// Protected auth endpoints
	authGroup.Get("/getUser", authMiddleware.Handler, authHandler.GetUser)
	authGroup.Post("/updateProfile", authMiddleware.Handler, authHandler.UpdateProfile)

	// Product endpoints; the listing itself is public.
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/user", authMiddleware.Handler, productHandler.ListMine)
	products.Post("/", authMiddleware.Handler, productHandler.Create)
	products.Put("/:id", authMiddleware.Handler, productHandler.Update)
	products.Delete("/:id", authMiddleware.Handler, productHandler.Delete)
	products.Patch("/:id/sold", authMiddleware.Handler, productHandler.MarkSold)
	products.Patch("/:id/save", authMiddleware.Handler, productHandler.ToggleSave)
	products.Patch("/:id/like", authMiddleware.Handler, productHandler.ToggleLike)
}
