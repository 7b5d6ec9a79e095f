package homeControllers

import (
	"goodreads/config"
	"goodreads/database"
	"goodreads/store"
	"goodreads/utils"

	"github.com/gofiber/fiber/v2"
)

// Home renders the review feed, newest first.
func Home(c *fiber.Ctx) error {
	number, size := utils.PageParams(c, config.AppConfig.FeedPageSize)

	page, err := store.NewReviewStore(database.Database.Db).List(c.UserContext(), number, size)
	if err != nil {
		return err
	}

	return utils.Render(c, fiber.StatusOK, "home", fiber.Map{
		"Reviews": page.Reviews,
		"Nav":     utils.PageNav(c, page.Page),
	})
}
