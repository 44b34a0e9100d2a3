package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"not null"`
	FullName       string    `json:"fullName" gorm:"not null"`
	ProfilePicture string    `json:"profilePicture"`
	// RefreshToken is the single live refresh token for this user. A refresh
	// token presented by a client is only honored while it is byte-equal to
	// this value; logout revokes by clearing it.
	RefreshToken *string   `json:"-"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;default:'reader'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsOwnerOrAdmin reports whether this user may act on a resource owned by
// ownerID under the "owner or admin" deletion policy.
func (u *User) IsOwnerOrAdmin(ownerID uuid.UUID) bool {
	return u.ID == ownerID || u.Role == RoleAdmin
}
