package userValidator

import (
	"goodreads/middleware"
	"goodreads/utils"
	"goodreads/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type RegisterForm struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Password  string `form:"password" json:"password" validate:"required,max=72"`
}

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"-"`
}

// ProfileForm carries username only so the form can echo it back; it is
// never written.
type ProfileForm struct {
	Username  string `form:"username" json:"username"`
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(RegisterForm)
		if err := c.BodyParser(form); err != nil {
			return renderRegister(c, form, map[string]string{"username": validators.RequiredMessage})
		}

		form.Username = strings.TrimSpace(form.Username)
		form.FirstName = strings.TrimSpace(form.FirstName)
		form.LastName = strings.TrimSpace(form.LastName)
		form.Email = strings.TrimSpace(form.Email)

		if errors := validators.Struct(form); errors != nil {
			return renderRegister(c, form, errors)
		}

		c.Locals(validators.LocalRegisterForm, form)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(LoginForm)
		if err := c.BodyParser(form); err != nil {
			return RenderLogin(c, fiber.StatusBadRequest, form, map[string]string{"__all__": "Invalid form submission."})
		}

		form.Username = strings.TrimSpace(form.Username)

		if errors := validators.Struct(form); errors != nil {
			return RenderLogin(c, fiber.StatusBadRequest, form, errors)
		}

		c.Locals(validators.LocalLoginForm, form)
		return c.Next()
	}
}

// Token validator middleware, the JSON counterpart of Login.
func Token() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(LoginForm)
		if err := c.BodyParser(form); err != nil {
			return middleware.ValidationErrorResponse(c, validators.ParseError(err))
		}

		form.Username = strings.TrimSpace(form.Username)

		if errors := validators.Struct(form); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(validators.LocalLoginForm, form)
		return c.Next()
	}
}

// ProfileEdit validator middleware
func ProfileEdit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(ProfileForm)
		if err := c.BodyParser(form); err != nil {
			return RenderProfileEdit(c, fiber.StatusBadRequest, form, map[string]string{"email": "Invalid form submission."})
		}

		form.FirstName = strings.TrimSpace(form.FirstName)
		form.LastName = strings.TrimSpace(form.LastName)
		form.Email = strings.TrimSpace(form.Email)
		if user := middleware.CurrentUser(c); user != nil {
			form.Username = user.Username
		}

		if errors := validators.Struct(form); errors != nil {
			return RenderProfileEdit(c, fiber.StatusBadRequest, form, errors)
		}

		c.Locals(validators.LocalProfileForm, form)
		return c.Next()
	}
}

func renderRegister(c *fiber.Ctx, form *RegisterForm, errors map[string]string) error {
	return RenderRegister(c, fiber.StatusBadRequest, form, errors)
}

// RenderRegister renders the registration page with field errors.
func RenderRegister(c *fiber.Ctx, status int, form *RegisterForm, errors map[string]string) error {
	return utils.Render(c, status, "users/register", fiber.Map{
		"Title":  "Register",
		"Form":   form,
		"Errors": errors,
	})
}

// RenderLogin renders the login page with field errors.
func RenderLogin(c *fiber.Ctx, status int, form *LoginForm, errors map[string]string) error {
	return utils.Render(c, status, "users/login", fiber.Map{
		"Title":  "Login",
		"Form":   form,
		"Next":   form.Next,
		"Errors": errors,
	})
}

// RenderProfileEdit renders the profile edit page with field errors.
func RenderProfileEdit(c *fiber.Ctx, status int, form *ProfileForm, errors map[string]string) error {
	return utils.Render(c, status, "users/profile_edit", fiber.Map{
		"Title":  "Edit profile",
		"Form":   form,
		"Errors": errors,
	})
}
