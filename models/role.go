package models

import "github.com/google/uuid"

// Role names are seeded at startup and never created at runtime.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleCitizen = "Citizen"
	RoleWorker  = "Worker"
	RoleAdmin   = "Admin"
)
