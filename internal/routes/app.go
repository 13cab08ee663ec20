package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	_ "github.com/vibhu2208/hrms-backend-sub007/docs"
	"github.com/vibhu2208/hrms-backend-sub007/internal/controllers"
	"github.com/vibhu2208/hrms-backend-sub007/internal/middleware"
)

// NewApp assembles the ops report server. Health and docs stay public;
// everything else needs a bearer token signed with secret.
func NewApp(secret string, h *controllers.ReportController) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hrmsops",
		ErrorHandler: jsonError,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Use(middleware.RequireJWT(secret))
	SetupReportRoutes(app, h)
	return app
}

func jsonError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
