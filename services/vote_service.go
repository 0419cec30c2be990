package services

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type VoteService interface {
	// CastVote records the vote, refreshes the cached counters and applies
	// the escalation decision. Self-votes and duplicates are rejected before
	// anything is written.
	CastVote(voterID uint, reportID uuid.UUID, voteType models.VoteType) (*models.Report, error)
	// MyVote is advisory, for the UI to disable repeat voting. Enforcement is
	// the ledger's unique index, not this read.
	MyVote(voterID uint, reportID uuid.UUID) (models.VoteType, bool, error)
}

type voteService struct {
	Config     *config.Config
	voteRepo   db.VoteRepository
	reportRepo db.ReportRepository
	notifier   NotificationService
}

// NewVoteService instantiates a VoteService
func NewVoteService(voteRepo db.VoteRepository, reportRepo db.ReportRepository, notifier NotificationService, conf *config.Config) VoteService {
	return &voteService{
		Config:     conf,
		voteRepo:   voteRepo,
		reportRepo: reportRepo,
		notifier:   notifier,
	}
}

func (s *voteService) CastVote(voterID uint, reportID uuid.UUID, voteType models.VoteType) (*models.Report, error) {
	if !voteType.Valid() {
		return nil, errs.New("vote_type must be support or oppose", http.StatusBadRequest)
	}

	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.CreatedBy == voterID {
		return nil, errs.ErrSelfVote
	}

	vote := &models.Vote{
		ReportID: reportID,
		VoterID:  voterID,
		VoteType: voteType,
	}
	updated, err := s.voteRepo.CastVote(vote)
	if err != nil {
		return nil, err
	}

	next, due := NextStatus(updated.Status, updated.SupportCount, updated.OppositionCount, s.Config.EscalationThreshold)
	if !due {
		return updated, nil
	}

	switch err := s.reportRepo.UpdateStatus(reportID, updated.Status, next); {
	case err == nil:
		updated.Status = next
		s.notifier.Emit(updated.CreatedBy,
			fmt.Sprintf("Your report %q reached the community support threshold and has been escalated.", updated.Title),
			models.NotifyEscalated, &updated.ID)
	case errors.Is(err, errs.ErrConflict):
		// A concurrent vote or admin action transitioned the report first.
		// The escalation already happened, so this vote just reflects it.
		if fresh, ferr := s.reportRepo.GetReportByID(reportID); ferr == nil {
			updated = fresh
		}
	default:
		return nil, err
	}

	return updated, nil
}

func (s *voteService) MyVote(voterID uint, reportID uuid.UUID) (models.VoteType, bool, error) {
	vote, err := s.voteRepo.GetVote(reportID, voterID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return vote.VoteType, true, nil
}
