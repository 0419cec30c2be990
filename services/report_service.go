package services

import (
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

// CreateReportParams is the citizen submission payload. Coordinates are
// pointers so "required" means present, not non-zero: latitude 0 (the
// equator) and longitude 0 (the prime meridian) are valid positions.
type CreateReportParams struct {
	Title       string   `json:"title" binding:"required,min=3"`
	Description string   `json:"description"`
	Type        string   `json:"type" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	ImageURL    string   `json:"image_url"`
}

type ReportService interface {
	CreateReport(userID uint, params CreateReportParams) (*models.Report, error)
	GetReport(reportID uuid.UUID) (*models.Report, error)
	ListReports(filter db.ReportFilter) ([]models.Report, error)
	GetReportStats() ([]models.StatusCount, []models.TypeCount, error)
}

type reportService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
}

// NewReportService instantiates a ReportService
func NewReportService(reportRepo db.ReportRepository, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		reportRepo: reportRepo,
	}
}

func (s *reportService) CreateReport(userID uint, params CreateReportParams) (*models.Report, error) {
	if params.Title == "" {
		return nil, errs.New("title is required", http.StatusBadRequest)
	}
	reportType := models.ReportType(params.Type)
	if !reportType.Valid() {
		return nil, errs.New("unknown report type: "+params.Type, http.StatusBadRequest)
	}
	if params.Latitude == nil || params.Longitude == nil {
		return nil, errs.New("latitude and longitude are required", http.StatusBadRequest)
	}
	lat, lng := *params.Latitude, *params.Longitude
	if !finite(lat) || !finite(lng) {
		return nil, errs.New("latitude and longitude must be finite numbers", http.StatusBadRequest)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, errs.New("latitude or longitude out of range", http.StatusBadRequest)
	}

	report := &models.Report{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Type:        reportType,
		Latitude:    lat,
		Longitude:   lng,
		Status:      models.StatusPending,
		CreatedBy:   userID,
		ImageURL:    params.ImageURL,
	}
	if err := s.reportRepo.CreateReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReport(reportID uuid.UUID) (*models.Report, error) {
	return s.reportRepo.GetReportByID(reportID)
}

func (s *reportService) ListReports(filter db.ReportFilter) ([]models.Report, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errs.New("unknown status filter", http.StatusBadRequest)
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, errs.New("unknown type filter", http.StatusBadRequest)
	}
	return s.reportRepo.ListReports(filter)
}

func (s *reportService) GetReportStats() ([]models.StatusCount, []models.TypeCount, error) {
	statusCounts, err := s.reportRepo.GetStatusCounts()
	if err != nil {
		return nil, nil, err
	}
	typeCounts, err := s.reportRepo.GetTypeCounts()
	if err != nil {
		return nil, nil, err
	}
	return statusCounts, typeCounts, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
