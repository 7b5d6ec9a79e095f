package store

import (
	"context"
	"errors"
	"fmt"
	"goodreads/models"
	"goodreads/pagination"
	"strings"

	"gorm.io/gorm"
)

type BookStore struct {
	db *gorm.DB
}

func NewBookStore(db *gorm.DB) *BookStore {
	return &BookStore{db: db}
}

// BookPage is one page of a book listing.
type BookPage struct {
	Books []models.Book
	Page  pagination.Page
}

// List filters by a case-insensitive title substring before paginating.
func (s *BookStore) List(ctx context.Context, q string, number, size int) (*BookPage, error) {
	search := titleContains(q)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Book{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	page := pagination.New(number, size, total)

	var books []models.Book
	err := s.db.WithContext(ctx).
		Scopes(search).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return &BookPage{Books: books, Page: page}, nil
}

func titleContains(q string) func(*gorm.DB) *gorm.DB {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		return db.Where("LOWER(title) LIKE ? ESCAPE '!'", "%"+escapeLike(q)+"%")
	}
}

func (s *BookStore) Get(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

func (s *BookStore) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check book %d: %w", id, err)
	}
	return count > 0, nil
}

func (s *BookStore) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find book by isbn %s: %w", isbn, err)
	}
	return &book, nil
}

// Create is used by the import tooling; there is no end-user surface for it.
func (s *BookStore) Create(ctx context.Context, book *models.Book) error {
	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// RefreshRatings recomputes review_count and average_stars for every book
// in one statement.
func (s *BookStore) RefreshRatings(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Exec(`
		UPDATE books SET
			review_count = (SELECT COUNT(*) FROM reviews WHERE reviews.book_id = books.id),
			average_stars = COALESCE((SELECT AVG(stars_given) FROM reviews WHERE reviews.book_id = books.id), 0)`)
	if res.Error != nil {
		return 0, fmt.Errorf("refresh ratings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// '!' rather than a backslash, which MySQL treats as a string escape.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
