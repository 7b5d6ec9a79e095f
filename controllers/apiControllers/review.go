package apiControllers

import (
	"errors"
	"fmt"
	"goodreads/config"
	"goodreads/database"
	"goodreads/dto"
	"goodreads/logger"
	"goodreads/middleware"
	"goodreads/models"
	"goodreads/store"
	"goodreads/utils"
	"goodreads/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const localReview = "review"

// ListReviews returns a page of reviews, newest first.
func ListReviews(c *fiber.Ctx) error {
	number, size := utils.PageParams(c, config.AppConfig.APIPageSize)

	page, err := store.NewReviewStore(database.Database.Db).List(c.UserContext(), number, size)
	if err != nil {
		return err
	}
	if page.Page.Number != number {
		return middleware.Detail(c, fiber.StatusNotFound, "Invalid page.")
	}

	return c.JSON(dto.NewReviewListResponse(page.Reviews, utils.AbsolutePageNav(c, page.Page)))
}

// LoadReview resolves :id into a review for the handlers after it and
// answers 404 when there is none.
func LoadReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.Detail(c, fiber.StatusNotFound, "Not found.")
	}

	review, err := store.NewReviewStore(database.Database.Db).Get(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.Detail(c, fiber.StatusNotFound, "Not found.")
		}
		return err
	}

	c.Locals(localReview, review)
	return c.Next()
}

func GetReview(c *fiber.Ctx) error {
	review := c.Locals(localReview).(*models.Review)
	return c.JSON(dto.NewReviewResponse(*review))
}

func CreateReview(c *fiber.Ctx) error {
	changes := c.Locals(validators.LocalReviewInput).(store.ReviewChanges)

	if fieldErrors, err := checkReferences(c, changes); err != nil {
		return err
	} else if fieldErrors != nil {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	review, err := store.NewReviewStore(database.Database.Db).Create(c.UserContext(), &models.Review{
		BookID:     *changes.BookID,
		UserID:     *changes.UserID,
		StarsGiven: *changes.StarsGiven,
		Comment:    *changes.Comment,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"reviewId": review.ID, "bookId": review.BookID}).Info("Review created via API")
	return c.Status(fiber.StatusCreated).JSON(dto.NewReviewResponse(*review))
}

// UpdateReview serves both PUT and PATCH; the validator decides which
// fields must be present.
func UpdateReview(c *fiber.Ctx) error {
	current := c.Locals(localReview).(*models.Review)
	changes := c.Locals(validators.LocalReviewInput).(store.ReviewChanges)

	if fieldErrors, err := checkReferences(c, changes); err != nil {
		return err
	} else if fieldErrors != nil {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	review, err := store.NewReviewStore(database.Database.Db).Update(c.UserContext(), current.ID, changes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.Detail(c, fiber.StatusNotFound, "Not found.")
		}
		return err
	}

	return c.JSON(dto.NewReviewResponse(*review))
}

func DeleteReview(c *fiber.Ctx) error {
	review := c.Locals(localReview).(*models.Review)

	if err := store.NewReviewStore(database.Database.Db).Delete(c.UserContext(), review.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.Detail(c, fiber.StatusNotFound, "Not found.")
		}
		return err
	}

	logger.WithFields(logrus.Fields{"reviewId": review.ID}).Info("Review deleted via API")
	return c.SendStatus(fiber.StatusNoContent)
}

// checkReferences reports book_id/user_id values that point at nothing.
func checkReferences(c *fiber.Ctx, changes store.ReviewChanges) (map[string]string, error) {
	fieldErrors := map[string]string{}

	if changes.BookID != nil {
		ok, err := store.NewBookStore(database.Database.Db).Exists(c.UserContext(), *changes.BookID)
		if err != nil {
			return nil, err
		}
		if !ok {
			fieldErrors["book_id"] = invalidPK(*changes.BookID)
		}
	}

	if changes.UserID != nil {
		ok, err := store.NewUserStore(database.Database.Db, config.AppConfig.SaltRound).Exists(c.UserContext(), *changes.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			fieldErrors["user_id"] = invalidPK(*changes.UserID)
		}
	}

	if len(fieldErrors) == 0 {
		return nil, nil
	}
	return fieldErrors, nil
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
