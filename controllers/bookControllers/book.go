package bookControllers

import (
	"errors"
	"fmt"
	"goodreads/config"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/middleware"
	"goodreads/models"
	"goodreads/store"
	"goodreads/utils"
	"goodreads/validators"
	"goodreads/validators/reviewValidator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ListBooks renders the searchable, paginated book list.
func ListBooks(c *fiber.Ctx) error {
	q := c.Query("q")
	number, size := utils.PageParams(c, config.AppConfig.BooksPageSize)

	page, err := store.NewBookStore(database.Database.Db).List(c.UserContext(), q, number, size)
	if err != nil {
		return err
	}

	return utils.Render(c, fiber.StatusOK, "books/list", fiber.Map{
		"Title": "Books",
		"Books": page.Books,
		"Query": q,
		"Nav":   utils.PageNav(c, page.Page),
	})
}

// BookDetail renders a book with its reviews and, for logged in users, the
// review form.
func BookDetail(c *fiber.Ctx) error {
	book, err := bookFromParams(c)
	if err != nil {
		return err
	}
	return renderDetail(c, fiber.StatusOK, book, &reviewValidator.ReviewForm{}, nil)
}

// AddReview stores a review of the book by the current user.
func AddReview(c *fiber.Ctx) error {
	book, err := bookFromParams(c)
	if err != nil {
		return err
	}

	form, _ := c.Locals(validators.LocalReviewForm).(*reviewValidator.ReviewForm)
	if form == nil {
		form = &reviewValidator.ReviewForm{}
	}
	if formErrors, ok := c.Locals(reviewValidator.LocalFormErrors).(map[string]string); ok {
		return renderDetail(c, fiber.StatusBadRequest, book, form, formErrors)
	}

	user := middleware.CurrentUser(c)
	review, err := store.NewReviewStore(database.Database.Db).Create(c.UserContext(), &models.Review{
		BookID:     book.ID,
		UserID:     user.ID,
		StarsGiven: form.StarsGiven,
		Comment:    form.Comment,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"reviewId": review.ID,
		"bookId":   book.ID,
		"userId":   user.ID,
	}).Info("Review submitted")

	return c.Redirect(fmt.Sprintf("/books/%d/", book.ID), fiber.StatusFound)
}

// ReviewsRedirect sends a GET on the reviews endpoint back to the book
// page, which is where a login redirect for a review submission lands.
func ReviewsRedirect(c *fiber.Ctx) error {
	book, err := bookFromParams(c)
	if err != nil {
		return err
	}
	return c.Redirect(fmt.Sprintf("/books/%d/", book.ID), fiber.StatusFound)
}

func bookFromParams(c *fiber.Ctx) (*models.Book, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	book, err := store.NewBookStore(database.Database.Db).Get(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func renderDetail(c *fiber.Ctx, status int, book *models.Book, form *reviewValidator.ReviewForm, formErrors map[string]string) error {
	reviews, err := store.NewReviewStore(database.Database.Db).ListForBook(c.UserContext(), book.ID)
	if err != nil {
		return err
	}
	if formErrors == nil {
		formErrors = map[string]string{}
	}

	return utils.Render(c, status, "books/detail", fiber.Map{
		"Title":   book.Title,
		"Book":    book,
		"Reviews": reviews,
		"Form":    form,
		"Errors":  formErrors,
	})
}
