package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/civicgridhq/civicgrid/models"
)

type FacilityRepository interface {
	ListFacilities() ([]models.Facility, error)
}

type facilityRepo struct {
	DB *gorm.DB
}

func NewFacilityRepo(db *GormDB) FacilityRepository {
	return &facilityRepo{db.DB}
}

func (r *facilityRepo) ListFacilities() ([]models.Facility, error) {
	var facilities []models.Facility
	if err := r.DB.Find(&facilities).Error; err != nil {
		return nil, errors.Wrap(err, "listing facilities")
	}
	return facilities, nil
}
