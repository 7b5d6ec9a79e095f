package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFormField  = "csrf_token"

	// Locals key holding the current token for templates
	LocalCSRFToken = "csrfToken"
)

var errCSRFTokenMissing = errors.New("csrf token missing")

// CSRF protects every unsafe request that is authenticated by the session
// cookie. The token lives in the session and is also sent as a cookie; forms
// post it as csrf_token, scripts as the X-Csrf-Token header. Bearer
// authenticated API requests carry no ambient credentials and are left
// alone.
func CSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		Next:           skipCSRF,
		Session:        Sessions,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		ContextKey:     LocalCSRFToken,
		Extractor:      csrfFromFormOrHeader,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusForbidden, "CSRF verification failed.")
		},
	})
}

// CSRFToken returns the token for the current request, or "" when the
// middleware was skipped.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalCSRFToken).(string)
	return token
}

func skipCSRF(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/static/") {
		return true
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		// APIAuthMiddleware ignores the session once an Authorization header
		// is present, and anonymous calls have no session to ride on
		return c.Get(fiber.HeaderAuthorization) != "" ||
			c.Path() == "/api/token/" ||
			CurrentUser(c) == nil
	}
	return false
}

func csrfFromFormOrHeader(c *fiber.Ctx) (string, error) {
	if token := c.FormValue(CSRFFormField); token != "" {
		return token, nil
	}
	if token := c.Get(csrf.HeaderName); token != "" {
		return token, nil
	}
	return "", errCSRFTokenMissing
}
