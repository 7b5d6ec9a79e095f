package utils

import (
	"context"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/store"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeRatingScheduler starts the job that keeps book rating summaries
// in step with the reviews table. The caller stops the returned cron.
func InitializeRatingScheduler(spec string) (*cron.Cron, error) {
	logger.Log.Info("[RATING-SCHEDULER] Initializing rating scheduler...")

	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := RefreshBookRatings(ctx); err != nil {
			logger.Log.Errorf("[RATING-SCHEDULER] %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.Infof("[RATING-SCHEDULER] Rating scheduler started with schedule %q", spec)
	return c, nil
}

// RefreshBookRatings recomputes review_count and average_stars for all books.
func RefreshBookRatings(ctx context.Context) error {
	rows, err := store.NewBookStore(database.Database.Db).RefreshRatings(ctx)
	if err != nil {
		return err
	}
	logger.Log.Infof("[RATING-SCHEDULER] Refreshed rating summaries of %d books", rows)
	return nil
}
