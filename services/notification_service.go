package services

import (
	"log"

	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/db"
	"github.com/civicgridhq/civicgrid/models"
)

// NotificationService fans lifecycle events out to users. Emit is
// fire-and-forget: a failed write is logged and swallowed so it can never roll
// back the transition that produced it.
type NotificationService interface {
	Emit(userID uint, message string, kind models.NotificationKind, reportID *uuid.UUID)
	ListForUser(userID uint) ([]models.Notification, error)
	MarkRead(userID, notificationID uint) error
}

type notificationService struct {
	notificationRepo db.NotificationRepository
}

// NewNotificationService instantiates a NotificationService
func NewNotificationService(notificationRepo db.NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Emit(userID uint, message string, kind models.NotificationKind, reportID *uuid.UUID) {
	n := &models.Notification{
		UserID:   userID,
		Message:  message,
		Kind:     kind,
		ReportID: reportID,
	}
	if err := s.notificationRepo.CreateNotification(n); err != nil {
		log.Printf("failed to deliver %s notification to user %d: %v", kind, userID, err)
	}
}

func (s *notificationService) ListForUser(userID uint) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(userID)
}

func (s *notificationService) MarkRead(userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(userID, notificationID)
}
