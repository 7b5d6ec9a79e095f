package apiRoutes

import (
	apiController "goodreads/controllers/apiControllers"
	"goodreads/middleware"
	reviewValidator "goodreads/validators/reviewValidator"
	userValidator "goodreads/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupAPIRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	apiGroup.Post("/token/", userValidator.Token(), apiController.ObtainToken)

	reviews := apiGroup.Group("/reviews", middleware.APIAuthMiddleware)
	reviews.Get("/", apiController.ListReviews)
	reviews.Post("/", reviewValidator.Review(false), apiController.CreateReview)
	reviews.Get("/:id/", apiController.LoadReview, apiController.GetReview)
	reviews.Put("/:id/", apiController.LoadReview, reviewValidator.Review(false), apiController.UpdateReview)
	reviews.Patch("/:id/", apiController.LoadReview, reviewValidator.Review(true), apiController.UpdateReview)
	reviews.Delete("/:id/", apiController.LoadReview, apiController.DeleteReview)
}
