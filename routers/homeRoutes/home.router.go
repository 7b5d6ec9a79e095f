package homeRoutes

import (
	homeController "goodreads/controllers/homeControllers"

	"github.com/gofiber/fiber/v2"
)

func SetupHomeRoutes(app *fiber.App) {
	app.Get("/", homeController.Home)
}
