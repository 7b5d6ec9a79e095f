package dto

import (
	"encoding/json"
	"goodreads/models"
	"goodreads/pagination"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewResponse_NestsBookAndUser(t *testing.T) {
	r := models.Review{
		ID:         7,
		StarsGiven: 5,
		Comment:    "good book",
		Book:       models.Book{ID: 3, Title: "book3", Description: "description3", ISBN: "555555"},
		User:       models.User{ID: 9, Username: "shuhrat", FirstName: "ilhom", Password: "hash"},
	}

	raw, err := json.Marshal(NewReviewResponse(r))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	book := body["book"].(map[string]interface{})
	user := body["user"].(map[string]interface{})
	assert.EqualValues(t, 3, book["id"])
	assert.Equal(t, "book3", book["title"])
	assert.Equal(t, "description3", book["description"])
	assert.Equal(t, "555555", book["isbn"])
	assert.EqualValues(t, 9, user["id"])
	assert.Equal(t, "shuhrat", user["username"])
	assert.Equal(t, "ilhom", user["first_name"])
	assert.NotContains(t, user, "password")
}

func TestNewReviewListResponse_NullLinks(t *testing.T) {
	nav := pagination.NewNav(pagination.New(1, 2, 0), "http://example.com/api/reviews/", url.Values{})

	raw, err := json.Marshal(NewReviewListResponse(nil, nav))
	require.NoError(t, err)

	assert.JSONEq(t, `{"count": 0, "next": null, "previous": null, "results": []}`, string(raw))
}
