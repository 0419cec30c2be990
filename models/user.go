package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated actor. Tokens are issued by an external
// auth provider; this service only validates them and keys authorization on
// the role.
type User struct {
	Model
	Fullname string    `json:"fullname" binding:"required,min=2"`
	Username string    `json:"username" binding:"required,min=2"`
	Email    string    `json:"email" gorm:"unique;not null" binding:"required,email"`
	RoleID   uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role     Role      `gorm:"foreignKey:RoleID" json:"role"`

	// Last reported field position, workers only. Feeds the map markers.
	LastLatitude  *float64   `json:"last_latitude,omitempty"`
	LastLongitude *float64   `json:"last_longitude,omitempty"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

// IsWorker reports whether the user holds the worker role.
func (u *User) IsWorker() bool {
	return u.Role.Name == RoleWorker
}
