package main

import (
	"caselab/config"
	"caselab/database"
	"caselab/middleware"
	adminRoutes "caselab/routers/adminRoutes"
	authRoutes "caselab/routers/authRoutes"
	caseRoutes "caselab/routers/caseRoutes"
	userRoutes "caselab/routers/userRoutes"
	"caselab/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitializeMembershipScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Health check stays reachable even without a database
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	app.Use(middleware.RequireDatabase)

	authRoutes.SetupAuthRoutes(app)
	caseRoutes.SetupCaseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
