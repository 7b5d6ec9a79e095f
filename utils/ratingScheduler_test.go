package utils

import (
	"context"
	"goodreads/database"
	"goodreads/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRatingScheduler_InvalidSpec(t *testing.T) {
	c, err := InitializeRatingScheduler("not a schedule")
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestInitializeRatingScheduler(t *testing.T) {
	c, err := InitializeRatingScheduler("@every 1h")
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}

func TestRefreshBookRatings(t *testing.T) {
	db, err := database.Open("sqlite", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	prev := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { database.Database = prev })

	user := &models.User{Username: "ilhom", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	rated := &models.Book{Title: "Sport", ISBN: "1"}
	unrated := &models.Book{Title: "Guide", ISBN: "2"}
	require.NoError(t, db.Create(rated).Error)
	require.NoError(t, db.Create(unrated).Error)
	for _, stars := range []int{2, 5} {
		require.NoError(t, db.Create(&models.Review{BookID: rated.ID, UserID: user.ID, StarsGiven: stars, Comment: "ok"}).Error)
	}

	require.NoError(t, RefreshBookRatings(context.Background()))

	var got models.Book
	require.NoError(t, db.First(&got, rated.ID).Error)
	assert.EqualValues(t, 2, got.ReviewCount)
	assert.InDelta(t, 3.5, got.AverageStars, 0.001)

	require.NoError(t, db.First(&got, unrated.ID).Error)
	assert.Zero(t, got.ReviewCount)
	assert.Zero(t, got.AverageStars)
}
