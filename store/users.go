package store

import (
	"context"
	"errors"
	"fmt"
	"goodreads/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewAccount carries the registration fields. Password is plaintext and is
// only ever hashed, never stored.
type NewAccount struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Profile is the mutable part of an account.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
}

type UserStore struct {
	db   *gorm.DB
	cost int
}

// NewUserStore returns a store hashing passwords with the given bcrypt cost.
func NewUserStore(db *gorm.DB, cost int) *UserStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, cost: cost}
}

// Create registers a new account. The username check is exact and
// case-sensitive; a unique index backs it up for concurrent registrations.
func (s *UserStore) Create(ctx context.Context, acc NewAccount) (*models.User, error) {
	taken, err := s.UsernameExists(ctx, acc.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(acc.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  acc.Username,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Email:     acc.Email,
		Password:  string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findByUsername matches the username exactly, whatever the column
// collation says.
func (s *UserStore) findByUsername(ctx context.Context, username string) (*models.User, error) {
	var candidates []models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	for i := range candidates {
		if candidates[i].Username == username {
			return &candidates[i], nil
		}
	}
	return nil, ErrNotFound
}

// Authenticate returns ErrInvalidCredentials for both an unknown username and
// a wrong password.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// keep timing close to the wrong-password path
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserStore) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user %d: %w", id, err)
	}
	return count > 0, nil
}

// UpdateProfile changes names and email only; username and password are
// never touched here.
func (s *UserStore) UpdateProfile(ctx context.Context, id uint, p Profile) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
