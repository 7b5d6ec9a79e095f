// Package store is the data-access layer: one store per entity, each a thin
// query builder over a *gorm.DB.
package store

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)
