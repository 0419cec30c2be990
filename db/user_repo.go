package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type UserRepository interface {
	FindUserByID(id uint) (*models.User, error)
	// UpdateWorkerLocation is bounded by ctx; callers treat it as
	// at-most-once and drop the ping on expiry.
	UpdateWorkerLocation(ctx context.Context, workerID uint, lat, lng float64) error
	ListWorkersWithLocation() ([]models.User, error)
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (r *userRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "fetching user")
	}
	return &user, nil
}

func (r *userRepo) UpdateWorkerLocation(ctx context.Context, workerID uint, lat, lng float64) error {
	now := time.Now()
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", workerID).
		Updates(map[string]interface{}{
			"last_latitude":  lat,
			"last_longitude": lng,
			"last_seen_at":   now,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "updating worker location")
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *userRepo) ListWorkersWithLocation() ([]models.User, error) {
	var workers []models.User
	err := r.DB.Joins("Role").
		Where("\"Role\".\"name\" = ? AND last_latitude IS NOT NULL", models.RoleWorker).
		Find(&workers).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing workers")
	}
	return workers, nil
}
