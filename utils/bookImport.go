package utils

import (
	"context"
	"errors"
	"goodreads/logger"
	"goodreads/store"
	"time"
)

// ImportSummary counts the outcome of an ISBN import run.
type ImportSummary struct {
	Inserted int
	Skipped  int
	Failed   int
}

// ImportISBNs looks every ISBN up on Open Library and saves the books not
// already present. Blank ISBNs are skipped.
func ImportISBNs(ctx context.Context, client *OpenLibraryClient, books *store.BookStore, isbns []string) ImportSummary {
	var summary ImportSummary
	for _, raw := range isbns {
		isbn := NormalizeISBN(raw)
		if isbn == "" {
			logger.Log.Warnf("Skipping blank ISBN %q", raw)
			summary.Skipped++
			continue
		}

		switch err := importISBN(ctx, client, books, isbn); {
		case err == nil:
			summary.Inserted++
		case errors.Is(err, errAlreadyImported):
			summary.Skipped++
		default:
			logger.Log.Warnf("Skipping ISBN %s: %v", isbn, err)
			summary.Failed++
		}
	}
	return summary
}

var errAlreadyImported = errors.New("already imported")

func importISBN(ctx context.Context, client *OpenLibraryClient, books *store.BookStore, isbn string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := books.FindByISBN(ctx, isbn); err == nil {
		return errAlreadyImported
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	book, err := client.LookupISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if err := books.Create(ctx, book); err != nil {
		return err
	}

	logger.Log.Infof("Imported %q (%s)", book.Title, isbn)
	return nil
}
