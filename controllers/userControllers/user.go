package userController

import (
	"errors"
	"goodreads/config"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/middleware"
	"goodreads/store"
	"goodreads/utils"
	"goodreads/validators"
	"goodreads/validators/userValidator"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"github.com/sirupsen/logrus"
)

const invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."

func userStore() *store.UserStore {
	return store.NewUserStore(database.Database.Db, config.AppConfig.SaltRound)
}

func RegisterPage(c *fiber.Ctx) error {
	return userValidator.RenderRegister(c, fiber.StatusOK, &userValidator.RegisterForm{}, nil)
}

// Register creates the account and sends the user to the login page.
func Register(c *fiber.Ctx) error {
	form := c.Locals(validators.LocalRegisterForm).(*userValidator.RegisterForm)

	user, err := userStore().Create(c.UserContext(), store.NewAccount{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return userValidator.RenderRegister(c, fiber.StatusBadRequest, form, map[string]string{
				"username": "A user with that username already exists.",
			})
		}
		if errors.Is(err, store.ErrPasswordTooLong) {
			return userValidator.RenderRegister(c, fiber.StatusBadRequest, form, map[string]string{
				"password": "Ensure this field has no more than 72 bytes.",
			})
		}
		return err
	}

	logger.WithFields(logrus.Fields{"userId": user.ID, "username": user.Username}).Info("User registered")
	utils.SendWelcomeEmail(user.Email, user.Username)

	return c.Redirect(middleware.LoginURL, fiber.StatusFound)
}

func LoginPage(c *fiber.Ctx) error {
	form := &userValidator.LoginForm{Next: c.Query("next")}
	return userValidator.RenderLogin(c, fiber.StatusOK, form, nil)
}

// Login starts a session. Unknown usernames and wrong passwords get the
// same answer.
func Login(c *fiber.Ctx) error {
	form := c.Locals(validators.LocalLoginForm).(*userValidator.LoginForm)

	user, err := userStore().Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			logger.WithFields(logrus.Fields{"ip": c.IP()}).Warn("Failed login attempt")
			return userValidator.RenderLogin(c, fiber.StatusBadRequest, form, map[string]string{
				"__all__": invalidLoginMessage,
			})
		}
		return err
	}

	if err := middleware.LoginUser(c, user.ID); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"userId": user.ID, "ip": c.IP()}).Info("User logged in")
	return c.Redirect(middleware.SafeNext(form.Next, "/books/"), fiber.StatusFound)
}

func Logout(c *fiber.Ctx) error {
	if err := middleware.LogoutUser(c); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Profile shows the current user's details and review activity.
func Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reviews := store.NewReviewStore(database.Database.Db)

	total, err := reviews.CountByUser(c.UserContext(), user.ID, time.Time{})
	if err != nil {
		return err
	}
	thisMonth, err := reviews.CountByUser(c.UserContext(), user.ID, now.BeginningOfMonth())
	if err != nil {
		return err
	}

	return utils.Render(c, fiber.StatusOK, "users/profile", fiber.Map{
		"Title":            "Profile",
		"User":             user,
		"ReviewCount":      total,
		"ReviewsThisMonth": thisMonth,
	})
}

func ProfileEditPage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	form := &userValidator.ProfileForm{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	return userValidator.RenderProfileEdit(c, fiber.StatusOK, form, nil)
}

// ProfileEdit saves names and email, then shows the profile.
func ProfileEdit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	form := c.Locals(validators.LocalProfileForm).(*userValidator.ProfileForm)

	_, err := userStore().UpdateProfile(c.UserContext(), user.ID, store.Profile{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		return err
	}

	return c.Redirect("/users/profile/", fiber.StatusFound)
}
