package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

const defaultPageSize = 20

// ReportFilter narrows ListReports. Zero values mean "no filter".
type ReportFilter struct {
	Status   models.ReportStatus
	Type     models.ReportType
	Page     int
	PageSize int
}

type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id uuid.UUID) (*models.Report, error)
	ListReports(filter ReportFilter) ([]models.Report, error)
	// UpdateStatus is a compare-and-swap on the status column. It rejects
	// edges the lifecycle does not permit with errs.ErrInvalidState and
	// returns errs.ErrConflict when the report is no longer in the from
	// status, so racing transitions never clobber each other.
	UpdateStatus(id uuid.UUID, from, to models.ReportStatus) error
	// AssignWorker binds the worker and performs the from→to CAS in one
	// statement.
	AssignWorker(id uuid.UUID, workerID uint, from, to models.ReportStatus) error
	// AttachResolutionProof stores the proof columns and moves the report to
	// working in a single conditional update, valid only while the report is
	// assigned or working. A report in any other status is left untouched and
	// the call returns errs.ErrConflict.
	AttachResolutionProof(id uuid.UUID, imageURL, notes string) error
	ListAssignedTo(workerID uint, statuses []models.ReportStatus) ([]models.Report, error)
	GetStatusCounts() ([]models.StatusCount, error)
	GetTypeCounts() ([]models.TypeCount, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) CreateReport(report *models.Report) error {
	if err := r.DB.Create(report).Error; err != nil {
		return errors.Wrap(err, "creating report")
	}
	return nil
}

func (r *reportRepo) GetReportByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.DB.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "fetching report")
	}
	return &report, nil
}

func (r *reportRepo) ListReports(filter ReportFilter) ([]models.Report, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	query := r.DB.Model(&models.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing reports")
	}
	return reports, nil
}

func (r *reportRepo) UpdateStatus(id uuid.UUID, from, to models.ReportStatus) error {
	if !from.CanTransition(to) {
		return errs.ErrInvalidState
	}
	res := r.DB.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return errors.Wrap(res.Error, "updating report status")
	}
	if res.RowsAffected == 0 {
		return errs.ErrConflict
	}
	return nil
}

func (r *reportRepo) AssignWorker(id uuid.UUID, workerID uint, from, to models.ReportStatus) error {
	if !from.CanTransition(to) {
		return errs.ErrInvalidState
	}
	res := r.DB.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":             to,
			"assigned_worker_id": workerID,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "assigning worker")
	}
	if res.RowsAffected == 0 {
		return errs.ErrConflict
	}
	return nil
}

func (r *reportRepo) AttachResolutionProof(id uuid.UUID, imageURL, notes string) error {
	res := r.DB.Model(&models.Report{}).
		Where("id = ? AND status IN ?", id, []models.ReportStatus{models.StatusAssigned, models.StatusWorking}).
		Updates(map[string]interface{}{
			"resolved_image_url": imageURL,
			"resolved_notes":     notes,
			"status":             models.StatusWorking,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "attaching resolution proof")
	}
	if res.RowsAffected == 0 {
		return errs.ErrConflict
	}
	return nil
}

func (r *reportRepo) ListAssignedTo(workerID uint, statuses []models.ReportStatus) ([]models.Report, error) {
	var reports []models.Report
	err := r.DB.
		Where("assigned_worker_id = ? AND status IN ?", workerID, statuses).
		Order("updated_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing assigned reports")
	}
	return reports, nil
}

func (r *reportRepo) GetStatusCounts() ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.DB.Model(&models.Report{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "counting reports by status")
	}
	return counts, nil
}

func (r *reportRepo) GetTypeCounts() ([]models.TypeCount, error) {
	var counts []models.TypeCount
	err := r.DB.Model(&models.Report{}).
		Select("type, count(*) as count").
		Group("type").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "counting reports by type")
	}
	return counts, nil
}
