package models

import "time"

const (
	MinStars = 1
	MaxStars = 5
)

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"not null;index" json:"book_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	StarsGiven int       `gorm:"type:smallint;not null;check:stars_given >= 1 AND stars_given <= 5" json:"stars_given"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Book Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}
