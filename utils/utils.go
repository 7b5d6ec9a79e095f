package utils

import (
	"goodreads/middleware"
	"goodreads/pagination"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// MainLayout wraps every HTML page.
const MainLayout = "layouts/main"

// Render renders an HTML page inside the main layout. CurrentUser,
// CSRFToken, Errors and Title are always present so templates can use them
// unguarded.
func Render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	return c.Status(status).Render(name, data, MainLayout)
}

// RenderError renders the generic error page.
func RenderError(c *fiber.Ctx, status int, message string) error {
	return Render(c, status, "errors/error", fiber.Map{
		"Title":   message,
		"Status":  status,
		"Message": message,
	})
}

// QueryValues returns the request's query string as url.Values.
func QueryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// PageParams reads page and page_size, falling back to page 1 and
// defaultSize for missing or invalid values.
func PageParams(c *fiber.Ctx, defaultSize int) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page, pagination.Size(c.QueryInt("page_size", defaultSize), defaultSize)
}

// PageNav builds previous/next links relative to the current path.
func PageNav(c *fiber.Ctx, p pagination.Page) pagination.Nav {
	return pagination.NewNav(p, c.Path(), QueryValues(c))
}

// AbsolutePageNav builds previous/next links as absolute URLs.
func AbsolutePageNav(c *fiber.Ctx, p pagination.Page) pagination.Nav {
	return pagination.NewNav(p, c.BaseURL()+c.Path(), QueryValues(c))
}
