package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxTitleLength matches the title column size.
const MaxTitleLength = 255

type Book struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	ISBN        string                      `gorm:"column:isbn;size:17;index" json:"isbn"`
	Publishers  datatypes.JSONSlice[string] `json:"publishers"`

	// Maintained by the rating summary job
	ReviewCount  int64   `gorm:"default:0" json:"review_count"`
	AverageStars float64 `gorm:"default:0" json:"average_stars"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
