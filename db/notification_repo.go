package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type NotificationRepository interface {
	CreateNotification(n *models.Notification) error
	ListByUser(userID uint) ([]models.Notification, error)
	MarkRead(userID, notificationID uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) CreateNotification(n *models.Notification) error {
	if err := r.DB.Create(n).Error; err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return nil
}

func (r *notificationRepo) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing notifications")
	}
	return notifications, nil
}

func (r *notificationRepo) MarkRead(userID, notificationID uint) error {
	res := r.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return errors.Wrap(res.Error, "marking notification read")
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
