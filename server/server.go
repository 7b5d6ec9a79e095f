// Package server assembles the Fiber application.
package server

import (
	"errors"
	"goodreads/logger"
	"goodreads/middleware"
	"goodreads/routers/apiRoutes"
	"goodreads/routers/bookRoutes"
	"goodreads/routers/homeRoutes"
	"goodreads/routers/userRoutes"
	"goodreads/utils"
	"goodreads/views"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the application. Database, config and sessions must be
// initialised first.
func New() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "goodreads",
		Views:        views.Engine(),
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Csrf-Token",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use("/static", filesystem.New(filesystem.Config{Root: views.Static()}))

	app.Use(middleware.LoadUser)
	app.Use(middleware.CSRF())

	homeRoutes.SetupHomeRoutes(app)
	bookRoutes.SetupBookRoutes(app)
	userRoutes.SetupUserRoutes(app)
	apiRoutes.SetupAPIRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

// errorHandler answers API paths with JSON and everything else with the
// error page.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.Log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}

	if code == fiber.StatusNotFound {
		message = "Not found."
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return middleware.Detail(c, code, message)
	}

	if renderErr := utils.RenderError(c, code, message); renderErr != nil {
		logger.Log.Errorf("Failed to render error page: %v", renderErr)
		return c.Status(code).SendString(message)
	}
	return nil
}
