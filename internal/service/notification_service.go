package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

// Notify is fire-and-forget: a failed insert is logged and swallowed so a
// notification problem can never unwind grading or progress already committed.
func (s *NotificationService) Notify(userID uint, category model.NotificationCategory, title, message string) {
	n := &model.Notification{
		UserID:   userID,
		Category: category,
		Title:    title,
		Message:  message,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Warn("failed to create notification",
			zap.Uint("userId", userID),
			zap.String("category", string(category)),
			zap.Error(err))
	}
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.NotificationRepo.ListByUser(userID, page, limit)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.NotificationRepo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.NotificationRepo.MarkRead(userID, notificationID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
