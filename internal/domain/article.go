package domain

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;not null"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	ImageURL   *string   `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User     User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category Category  `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
