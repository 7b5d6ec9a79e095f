package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"goodreads/models"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
)

var ErrBookNotFound = errors.New("book not found in open library")

// OpenLibraryClient looks up edition metadata by ISBN.
type OpenLibraryClient struct {
	client *resty.Client
}

func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &OpenLibraryClient{client: client}
}

type openLibraryEdition struct {
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Description json.RawMessage `json:"description"`
	Publishers  []string        `json:"publishers"`
}

// LookupISBN fetches the edition for isbn and maps it to an unsaved Book.
func (o *OpenLibraryClient) LookupISBN(ctx context.Context, isbn string) (*models.Book, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("empty isbn")
	}

	var edition openLibraryEdition
	resp, err := o.client.R().
		SetContext(ctx).
		SetPathParam("isbn", isbn).
		SetResult(&edition).
		Get("/isbn/{isbn}.json")
	if err != nil {
		return nil, fmt.Errorf("lookup isbn %s: %w", isbn, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrBookNotFound
	default:
		return nil, fmt.Errorf("lookup isbn %s: unexpected status %d", isbn, resp.StatusCode())
	}

	if edition.Title == "" {
		return nil, ErrBookNotFound
	}

	description := editionDescription(edition.Description)
	if description == "" {
		description = edition.Subtitle
	}

	return &models.Book{
		Title:       truncateRunes(edition.Title, models.MaxTitleLength),
		Description: description,
		ISBN:        isbn,
		Publishers:  datatypes.NewJSONSlice(edition.Publishers),
	}, nil
}

// editionDescription handles both the plain string form and the
// {"type": ..., "value": ...} text block form.
func editionDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var block struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &block); err == nil {
		return block.Value
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// NormalizeISBN strips spaces and hyphens.
func NormalizeISBN(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}
