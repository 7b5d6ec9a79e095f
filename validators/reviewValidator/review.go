package reviewValidator

import (
	"goodreads/middleware"
	"goodreads/store"
	"goodreads/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalFormErrors holds field errors of the book page review form; the
// controller re-renders the page with them.
const LocalFormErrors = "reviewFormErrors"

// ReviewForm is the review form on a book page. Book and user are implied.
type ReviewForm struct {
	StarsGiven int    `form:"stars_given" json:"stars_given" validate:"required,min=1,max=5"`
	Comment    string `form:"comment" json:"comment" validate:"required"`
}

// ReviewInput is a full review as accepted by POST and PUT.
type ReviewInput struct {
	BookID     *uint   `form:"book_id" json:"book_id" validate:"required"`
	UserID     *uint   `form:"user_id" json:"user_id" validate:"required"`
	StarsGiven *int    `form:"stars_given" json:"stars_given" validate:"required,min=1,max=5"`
	Comment    *string `form:"comment" json:"comment" validate:"required"`
}

// ReviewPatch is a partial review as accepted by PATCH.
type ReviewPatch struct {
	BookID     *uint   `form:"book_id" json:"book_id" validate:"omitnil,gt=0"`
	UserID     *uint   `form:"user_id" json:"user_id" validate:"omitnil,gt=0"`
	StarsGiven *int    `form:"stars_given" json:"stars_given" validate:"omitnil,min=1,max=5"`
	Comment    *string `form:"comment" json:"comment" validate:"omitnil,min=1"`
}

func (in ReviewInput) Changes() store.ReviewChanges {
	return store.ReviewChanges{BookID: in.BookID, UserID: in.UserID, StarsGiven: in.StarsGiven, Comment: in.Comment}
}

func (in ReviewPatch) Changes() store.ReviewChanges {
	return store.ReviewChanges{BookID: in.BookID, UserID: in.UserID, StarsGiven: in.StarsGiven, Comment: in.Comment}
}

// BookReview validator middleware. Unlike the others it does not answer
// by itself: errors are handed on so the book page can be re-rendered.
func BookReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(ReviewForm)
		errors := map[string]string{}

		if err := c.BodyParser(form); err != nil {
			errors["stars_given"] = "Enter a whole number."
		} else {
			form.Comment = strings.TrimSpace(form.Comment)
			if verrs := validators.Struct(form); verrs != nil {
				errors = verrs
			}
		}

		c.Locals(validators.LocalReviewForm, form)
		if len(errors) > 0 {
			c.Locals(LocalFormErrors, errors)
		}
		return c.Next()
	}
}

// Review validator middleware for the API. With partial set, absent fields
// are allowed and left unchanged.
func Review(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			target interface{}
			input  ReviewInput
			patch  ReviewPatch
		)
		if partial {
			target = &patch
		} else {
			target = &input
		}

		if len(c.Body()) > 0 {
			if err := c.BodyParser(target); err != nil {
				return middleware.ValidationErrorResponse(c, validators.ParseError(err))
			}
		}

		if errors := validators.Struct(target); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if partial {
			c.Locals(validators.LocalReviewInput, patch.Changes())
		} else {
			c.Locals(validators.LocalReviewInput, input.Changes())
		}
		return c.Next()
	}
}
