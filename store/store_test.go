package store

import (
	"context"
	"goodreads/database"
	"goodreads/models"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	u, err := NewUserStore(db, bcrypt.MinCost).Create(context.Background(), NewAccount{
		Username:  username,
		FirstName: "ilhom",
		Password:  password,
	})
	require.NoError(t, err)
	return u
}

func createBook(t *testing.T, db *gorm.DB, title string) *models.Book {
	t.Helper()

	b := &models.Book{Title: title, Description: "description of " + title, ISBN: "555555"}
	require.NoError(t, NewBookStore(db).Create(context.Background(), b))
	return b
}

func createReview(t *testing.T, db *gorm.DB, book *models.Book, user *models.User, stars int, comment string) *models.Review {
	t.Helper()

	r, err := NewReviewStore(db).Create(context.Background(), &models.Review{
		BookID:     book.ID,
		UserID:     user.ID,
		StarsGiven: stars,
		Comment:    comment,
	})
	require.NoError(t, err)
	return r
}

func newReview(bookID, userID uint) *models.Review {
	return &models.Review{BookID: bookID, UserID: userID, StarsGiven: 3, Comment: "a comment"}
}
