// Package main is the entry point for the Campus Kart API server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"campuskart/internal/config"
	"campuskart/internal/repositories"
	"campuskart/internal/routes"
	"campuskart/internal/services/mailer"
	"campuskart/internal/services/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	mail := mailer.New(mailer.Config{
		SMTPHost: config.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: config.GetIntEnv("SMTP_PORT", 587),
		SMTPUser: config.GetEnv("EMAIL_USER", ""),
		SMTPPass: config.GetEnv("EMAIL_PASSWORD", ""),
		From:     config.GetEnv("EMAIL_USER", ""),
		FromName: config.GetEnv("EMAIL_FROM_NAME", "Campus Kart"),
	})

	uploader, err := storage.New(context.Background(), storage.Config{
		Region:       config.GetEnv("S3_REGION", "us-east-1"),
		Bucket:       config.GetEnv("S3_BUCKET", "campuskart"),
		AccessKey:    config.GetEnv("S3_ACCESS_KEY", ""),
		SecretKey:    config.GetEnv("S3_SECRET_KEY", ""),
		BaseEndpoint: config.GetEnv("S3_ENDPOINT", ""),
		PublicURL:    config.GetEnv("S3_PUBLIC_URL", ""),
		Folder:       "products",
	})
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 12 << 20, // multipart product images
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGIN", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Per-IP limits on the public auth endpoints.
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/verify"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        config.GetIntEnv("AUTH_RATE_LIMIT", 5),
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "too many requests, please try again later",
				})
			},
		}))
	}

	routes.SetupRoutes(app, mail, uploader)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
