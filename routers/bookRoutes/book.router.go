package bookRoutes

import (
	bookController "goodreads/controllers/bookControllers"
	"goodreads/middleware"
	reviewValidator "goodreads/validators/reviewValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupBookRoutes(app *fiber.App) {
	bookGroup := app.Group("/books")

	bookGroup.Get("/", bookController.ListBooks)
	bookGroup.Get("/:id/", bookController.BookDetail)
	bookGroup.Get("/:id/reviews/", bookController.ReviewsRedirect)
	bookGroup.Post("/:id/reviews/", middleware.LoginRequired, reviewValidator.BookReview(), bookController.AddReview)
}
