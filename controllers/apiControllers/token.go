package apiControllers

import (
	"errors"
	"goodreads/config"
	"goodreads/database"
	"goodreads/dto"
	"goodreads/middleware"
	"goodreads/store"
	"goodreads/validators"
	"goodreads/validators/userValidator"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ObtainToken exchanges username and password for a bearer token.
func ObtainToken(c *fiber.Ctx) error {
	form := c.Locals(validators.LocalLoginForm).(*userValidator.LoginForm)

	users := store.NewUserStore(database.Database.Db, config.AppConfig.SaltRound)
	user, err := users.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}
		return err
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token issued.", dto.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(middleware.TokenTTL),
	})
}
