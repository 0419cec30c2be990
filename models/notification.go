package models

import "github.com/google/uuid"

// NotificationKind tags what lifecycle event produced a notification.
type NotificationKind string

const (
	NotifyEscalated NotificationKind = "report_escalated"
	NotifyAssigned  NotificationKind = "report_assigned"
	NotifyResolved  NotificationKind = "report_resolved"
)

// Notification is a durable message for a user, written as a side effect of a
// report transition. Delivery failures never roll the transition back.
type Notification struct {
	Model
	UserID   uint             `json:"user_id" gorm:"index;not null"`
	Message  string           `json:"message"`
	Kind     NotificationKind `json:"kind" gorm:"type:varchar(32)"`
	ReportID *uuid.UUID       `json:"report_id,omitempty" gorm:"type:uuid;index"`
	IsRead   bool             `json:"is_read" gorm:"default:false"`
}
