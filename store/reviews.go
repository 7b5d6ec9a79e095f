package store

import (
	"context"
	"errors"
	"fmt"
	"goodreads/models"
	"goodreads/pagination"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// ReviewPage is one page of the review feed.
type ReviewPage struct {
	Reviews []models.Review
	Page    pagination.Page
}

// ReviewChanges lists the mutable fields of a review. Nil fields are left
// as they are.
type ReviewChanges struct {
	BookID     *uint
	UserID     *uint
	StarsGiven *int
	Comment    *string
}

const newestFirst = "created_at DESC, id DESC"

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Book").Preload("User")
}

// List returns all reviews newest first.
func (s *ReviewStore) List(ctx context.Context, number, size int) (*ReviewPage, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	page := pagination.New(number, size, total)

	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Scopes(withRelations).
		Order(newestFirst).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &ReviewPage{Reviews: reviews, Page: page}, nil
}

// ListForBook returns every review of one book, newest first.
func (s *ReviewStore) ListForBook(ctx context.Context, bookID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Scopes(withRelations).
		Where("book_id = ?", bookID).
		Order(newestFirst).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews of book %d: %w", bookID, err)
	}
	return reviews, nil
}

// CountByUser counts the user's reviews created at or after since. A zero
// since counts all of them.
func (s *ReviewStore) CountByUser(ctx context.Context, userID uint, since time.Time) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Review{}).Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count reviews of user %d: %w", userID, err)
	}
	return count, nil
}

func (s *ReviewStore) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).Scopes(withRelations).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	return &review, nil
}

func (s *ReviewStore) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check review %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts the review and returns it with book and user loaded.
// Associations are never written through a review.
func (s *ReviewStore) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.Get(ctx, review.ID)
}

// Update applies the non-nil changes to review id.
func (s *ReviewStore) Update(ctx context.Context, id uint, changes ReviewChanges) (*models.Review, error) {
	exists, err := s.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if changes.BookID != nil {
		fields["book_id"] = *changes.BookID
	}
	if changes.UserID != nil {
		fields["user_id"] = *changes.UserID
	}
	if changes.StarsGiven != nil {
		fields["stars_given"] = *changes.StarsGiven
	}
	if changes.Comment != nil {
		fields["comment"] = *changes.Comment
	}

	if len(fields) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error
		if err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("update review %d: %w", id, err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes review id only; its book and user stay.
func (s *ReviewStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete review %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
