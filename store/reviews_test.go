package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewStore_CreateLoadsRelations(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")

	r := createReview(t, db, book, user, 2, "bad book")

	assert.Equal(t, 2, r.StarsGiven)
	assert.Equal(t, "bad book", r.Comment)
	assert.Equal(t, "book3", r.Book.Title)
	assert.Equal(t, "shuhrat", r.User.Username)
}

func TestReviewStore_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")
	reviews := NewReviewStore(db)

	first := createReview(t, db, book, user, 3, "good book")
	second := createReview(t, db, book, user, 4, "eha")
	third := createReview(t, db, book, user, 2, "boladi")

	page, err := reviews.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, third.ID, page.Reviews[0].ID)
	assert.Equal(t, second.ID, page.Reviews[1].ID)
	assert.EqualValues(t, 3, page.Page.Total)
	assert.True(t, page.Page.HasNext())
	assert.False(t, page.Page.HasPrevious())

	page, err = reviews.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, first.ID, page.Reviews[0].ID)
	assert.True(t, page.Page.HasPrevious())
}

func TestReviewStore_ListOrdersByCreatedAt(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")
	reviews := NewReviewStore(db)

	older := createReview(t, db, book, user, 3, "older")
	newer := createReview(t, db, book, user, 4, "newer")

	// push the first review into the future; order follows created_at, not id
	require.NoError(t, db.Table("reviews").Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(time.Hour)).Error)

	page, err := reviews.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, older.ID, page.Reviews[0].ID)
	assert.Equal(t, newer.ID, page.Reviews[1].ID)
}

func TestReviewStore_CreateUnknownBook(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")

	_, err := NewReviewStore(db).Create(context.Background(), newReview(999, user.ID))
	assert.Error(t, err)
}

func TestReviewStore_UpdatePartial(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")
	reviews := NewReviewStore(db)
	r := createReview(t, db, book, user, 5, "good book")

	stars := 4
	updated, err := reviews.Update(context.Background(), r.ID, ReviewChanges{StarsGiven: &stars})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.StarsGiven)
	assert.Equal(t, "good book", updated.Comment)
	assert.Equal(t, book.ID, updated.BookID)
	assert.Equal(t, user.ID, updated.UserID)
}

func TestReviewStore_UpdateAllFields(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	other := createUser(t, db, "shuhrat2", "somepass")
	book := createBook(t, db, "book3")
	otherBook := createBook(t, db, "book4")
	reviews := NewReviewStore(db)
	r := createReview(t, db, book, user, 5, "good book")

	stars, comment := 4, "norm book"
	updated, err := reviews.Update(context.Background(), r.ID, ReviewChanges{
		BookID:     &otherBook.ID,
		UserID:     &other.ID,
		StarsGiven: &stars,
		Comment:    &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.StarsGiven)
	assert.Equal(t, "norm book", updated.Comment)
	assert.Equal(t, "book4", updated.Book.Title)
	assert.Equal(t, "shuhrat2", updated.User.Username)
}

func TestReviewStore_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	stars := 4

	_, err := NewReviewStore(db).Update(context.Background(), 999, ReviewChanges{StarsGiven: &stars})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewStore_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")
	reviews := NewReviewStore(db)
	r := createReview(t, db, book, user, 5, "good book")

	require.NoError(t, reviews.Delete(context.Background(), r.ID))

	exists, err := reviews.Exists(context.Background(), r.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// book and user survive
	_, err = NewBookStore(db).Get(context.Background(), book.ID)
	assert.NoError(t, err)
	_, err = NewUserStore(db, 4).Get(context.Background(), user.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, reviews.Delete(context.Background(), r.ID), ErrNotFound)
}

func TestReviewStore_ListForBookAndCountByUser(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shuhrat", "somepass")
	book := createBook(t, db, "book3")
	otherBook := createBook(t, db, "book4")
	reviews := NewReviewStore(db)

	createReview(t, db, book, user, 5, "good book")
	createReview(t, db, otherBook, user, 1, "meh")

	got, err := reviews.ListForBook(context.Background(), book.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "good book", got[0].Comment)

	total, err := reviews.CountByUser(context.Background(), user.ID, time.Time{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	future, err := reviews.CountByUser(context.Background(), user.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, future)
}
