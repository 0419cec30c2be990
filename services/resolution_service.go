package services

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type ResolutionService interface {
	// SubmitProof stores the worker's photo evidence and moves the report to
	// working. Re-submitting while working replaces the proof without a
	// status change.
	SubmitProof(reportID uuid.UUID, workerID uint, photo *multipart.FileHeader, notes string) (*models.Report, error)
	// MarkResolvedByWorker is the worker's "I believe this is done" signal.
	MarkResolvedByWorker(reportID uuid.UUID, workerID uint) (*models.Report, error)
	// ConfirmResolution is the only way a report reaches the terminal
	// resolved status. Admin-only; the role check happens at the boundary.
	ConfirmResolution(reportID uuid.UUID, adminID uint) (*models.Report, error)
}

type resolutionService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
	media      MediaService
	notifier   NotificationService
}

// NewResolutionService instantiates a ResolutionService
func NewResolutionService(reportRepo db.ReportRepository, media MediaService, notifier NotificationService, conf *config.Config) ResolutionService {
	return &resolutionService{
		Config:     conf,
		reportRepo: reportRepo,
		media:      media,
		notifier:   notifier,
	}
}

func (s *resolutionService) SubmitProof(reportID uuid.UUID, workerID uint, photo *multipart.FileHeader, notes string) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.AssignedWorkerID == nil || *report.AssignedWorkerID != workerID {
		return nil, errs.ErrForbidden
	}
	if report.Status != models.StatusAssigned && report.Status != models.StatusWorking {
		return nil, errs.ErrInvalidState
	}
	if photo == nil {
		return nil, errs.New("a proof photo is required", http.StatusBadRequest)
	}

	imageURL, err := s.media.UploadProofPhoto(photo, reportID)
	if err != nil {
		return nil, err
	}
	// One conditional update: proof columns and the assigned→working move
	// land together, so a losing race leaves the report untouched.
	if err := s.reportRepo.AttachResolutionProof(reportID, imageURL, notes); err != nil {
		return nil, err
	}

	report.Status = models.StatusWorking
	report.ResolvedImageURL = imageURL
	report.ResolvedNotes = notes

	return report, nil
}

func (s *resolutionService) MarkResolvedByWorker(reportID uuid.UUID, workerID uint) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.AssignedWorkerID == nil || *report.AssignedWorkerID != workerID {
		return nil, errs.ErrForbidden
	}
	if report.ResolvedImageURL == "" || report.Status != models.StatusWorking {
		return nil, errs.ErrInvalidState
	}

	if err := s.reportRepo.UpdateStatus(reportID, models.StatusWorking, models.StatusPendingConfirmation); err != nil {
		return nil, err
	}
	report.Status = models.StatusPendingConfirmation

	return report, nil
}

func (s *resolutionService) ConfirmResolution(reportID uuid.UUID, adminID uint) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.StatusWorking && report.Status != models.StatusPendingConfirmation {
		return nil, errs.ErrInvalidState
	}

	if err := s.reportRepo.UpdateStatus(reportID, report.Status, models.StatusResolved); err != nil {
		return nil, err
	}
	report.Status = models.StatusResolved

	s.notifier.Emit(report.CreatedBy,
		fmt.Sprintf("Your report %q has been resolved and confirmed.", report.Title),
		models.NotifyResolved, &report.ID)

	return report, nil
}
