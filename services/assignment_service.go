package services

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type AssignmentService interface {
	// Assign binds exactly one worker to an escalated report. There is no
	// reassignment flow: one active assignment per report, append-only.
	Assign(reportID uuid.UUID, workerID uint) (*models.Report, error)
	ListAssignedTo(workerID uint, includeHistory bool) ([]models.Report, error)
}

type assignmentService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
	userRepo   db.UserRepository
	notifier   NotificationService
}

// NewAssignmentService instantiates an AssignmentService
func NewAssignmentService(reportRepo db.ReportRepository, userRepo db.UserRepository, notifier NotificationService, conf *config.Config) AssignmentService {
	return &assignmentService{
		Config:     conf,
		reportRepo: reportRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (s *assignmentService) Assign(reportID uuid.UUID, workerID uint) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.StatusEscalated {
		return nil, errs.ErrInvalidState
	}

	worker, err := s.userRepo.FindUserByID(workerID)
	if err != nil {
		return nil, errs.New("worker not found", http.StatusBadRequest)
	}
	if !worker.IsWorker() {
		return nil, errs.New("user is not a worker", http.StatusBadRequest)
	}

	if err := s.reportRepo.AssignWorker(reportID, workerID, models.StatusEscalated, models.StatusAssigned); err != nil {
		return nil, err
	}

	report.Status = models.StatusAssigned
	report.AssignedWorkerID = &workerID
	s.notifier.Emit(workerID,
		fmt.Sprintf("You have been assigned report %q (%s).", report.Title, report.Type),
		models.NotifyAssigned, &report.ID)

	return report, nil
}

func (s *assignmentService) ListAssignedTo(workerID uint, includeHistory bool) ([]models.Report, error) {
	statuses := models.ActiveStatuses()
	if includeHistory {
		statuses = append(statuses, models.StatusResolved)
	}
	return s.reportRepo.ListAssignedTo(workerID, statuses)
}
