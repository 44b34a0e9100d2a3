package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category names are normalized to lowercase before they reach the database,
// so uniqueness is effectively case-insensitive.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
