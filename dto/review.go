// Package dto holds the JSON representations served by the API.
package dto

import (
	"goodreads/models"
	"goodreads/pagination"
	"time"
)

type BookSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
}

type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ReviewResponse struct {
	ID         uint        `json:"id"`
	StarsGiven int         `json:"stars_given"`
	Comment    string      `json:"comment"`
	CreatedAt  time.Time   `json:"created_at"`
	Book       BookSummary `json:"book"`
	User       UserSummary `json:"user"`
}

// ReviewListResponse is a page of reviews. Next and Previous are null at
// the ends.
type ReviewListResponse struct {
	Count    int64            `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []ReviewResponse `json:"results"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		StarsGiven: r.StarsGiven,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		Book: BookSummary{
			ID:          r.Book.ID,
			Title:       r.Book.Title,
			Description: r.Book.Description,
			ISBN:        r.Book.ISBN,
		},
		User: UserSummary{
			ID:        r.User.ID,
			Username:  r.User.Username,
			FirstName: r.User.FirstName,
			LastName:  r.User.LastName,
			Email:     r.User.Email,
		},
	}
}

func NewReviewListResponse(reviews []models.Review, nav pagination.Nav) ReviewListResponse {
	results := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		results = append(results, NewReviewResponse(r))
	}
	return ReviewListResponse{
		Count:    nav.Total,
		Next:     optional(nav.NextURL),
		Previous: optional(nav.PreviousURL),
		Results:  results,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
