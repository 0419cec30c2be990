package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteType is the direction of a citizen's vote on a report.
type VoteType string

const (
	VoteSupport VoteType = "support"
	VoteOppose  VoteType = "oppose"
)

func (v VoteType) Valid() bool {
	return v == VoteSupport || v == VoteOppose
}

// Vote is one citizen's vote on one report. The composite unique index on
// (report_id, voter_id) is the duplicate-vote gate; votes are immutable once
// cast.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_report_voter"`
	VoterID   uint      `json:"voter_id" gorm:"not null;uniqueIndex:idx_votes_report_voter"`
	VoteType  VoteType  `json:"vote_type" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"created_at"`
}
