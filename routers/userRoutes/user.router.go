package userRoutes

import (
	userController "goodreads/controllers/userControllers"
	"goodreads/middleware"
	userValidator "goodreads/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/register/", userController.RegisterPage)
	userGroup.Post("/register/", userValidator.Register(), userController.Register)
	userGroup.Get("/login/", userController.LoginPage)
	userGroup.Post("/login/", userValidator.Login(), userController.Login)
	userGroup.Get("/logout/", userController.Logout)
	userGroup.Get("/profile/", middleware.LoginRequired, userController.Profile)
	userGroup.Get("/profile/edit/", middleware.LoginRequired, userController.ProfileEditPage)
	userGroup.Post("/profile/edit/", middleware.LoginRequired, userValidator.ProfileEdit(), userController.ProfileEdit)
}
