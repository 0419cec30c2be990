package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the closed lifecycle enumeration shared by every component.
// Transitions happen only along the edges CanTransition permits.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusEscalated ReportStatus = "escalated"
	StatusAssigned  ReportStatus = "assigned"
	StatusWorking   ReportStatus = "working"
	// StatusPendingConfirmation means the assigned worker believes the work is
	// done and is waiting for an admin to confirm.
	StatusPendingConfirmation ReportStatus = "pending_confirmation"
	StatusResolved            ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusEscalated, StatusAssigned, StatusWorking,
		StatusPendingConfirmation, StatusResolved:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next follows a lifecycle edge.
// Opposition never reverts an escalation and resolved is terminal.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusEscalated
	case StatusEscalated:
		return next == StatusAssigned
	case StatusAssigned:
		return next == StatusWorking
	case StatusWorking:
		return next == StatusPendingConfirmation || next == StatusResolved
	case StatusPendingConfirmation:
		return next == StatusResolved
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ReportStatus) Terminal() bool {
	return s == StatusResolved
}

// ReportType is the civic-issue category of a report.
type ReportType string

const (
	TypeIllegalDumping ReportType = "illegal_dumping"
	TypePothole        ReportType = "pothole"
	TypeStreetlight    ReportType = "streetlight"
	TypeWaterLeak      ReportType = "water_leak"
	TypeSewageOverflow ReportType = "sewage_overflow"
	TypeOther          ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case TypeIllegalDumping, TypePothole, TypeStreetlight, TypeWaterLeak,
		TypeSewageOverflow, TypeOther:
		return true
	}
	return false
}

// Report is a citizen-submitted civic issue. SupportCount and OppositionCount
// are a cached projection of the votes table, maintained inside the vote
// transaction; the votes table stays the source of truth.
type Report struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title            string       `json:"title" gorm:"not null"`
	Description      string       `json:"description,omitempty" gorm:"type:varchar(1000)"`
	Type             ReportType   `json:"type" gorm:"type:varchar(32);index;not null"`
	Latitude         float64      `json:"latitude" gorm:"not null"`
	Longitude        float64      `json:"longitude" gorm:"not null"`
	Status           ReportStatus `json:"status" gorm:"type:varchar(32);index;default:'pending'"`
	CreatedBy        uint         `json:"created_by" gorm:"index;not null"`
	ImageURL         string       `json:"image_url,omitempty"`
	ResolvedImageURL string       `json:"resolved_image_url,omitempty"`
	ResolvedNotes    string       `json:"resolved_notes,omitempty" gorm:"type:varchar(1000)"`
	AssignedWorkerID *uint        `json:"assigned_worker_id,omitempty" gorm:"index"`
	SupportCount     int          `json:"support_count" gorm:"default:0"`
	OppositionCount  int          `json:"opposition_count" gorm:"default:0"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// ActiveStatuses are the statuses that make up a worker's active queue.
func ActiveStatuses() []ReportStatus {
	return []ReportStatus{StatusAssigned, StatusWorking, StatusPendingConfirmation}
}

// StatusCount is a per-status tally used by the stats endpoint.
type StatusCount struct {
	Status ReportStatus `json:"status"`
	Count  int64        `json:"count"`
}

// TypeCount is a per-category tally used by the stats endpoint.
type TypeCount struct {
	Type  ReportType `json:"type"`
	Count int64      `json:"count"`
}
