package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService persists and serves user notifications. It is the
// Notifier used by budget alerting and goal reminders.
type NotificationService struct {
	notifications NotificationStore
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, message, notificationType string) error {
	if message == "" || notificationType == "" {
		return fmt.Errorf("%w: message and type are required", ErrInvalidInput)
	}

	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	s.logger.Debug("Notification created",
		zap.String("user_id", userID.String()),
		zap.String("type", notificationType),
	)
	return nil
}

func (s *NotificationService) CreateNotification(ctx context.Context, userID uuid.UUID, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if req.Message == "" || req.Type == "" {
		return nil, fmt.Errorf("%w: message and type are required", ErrInvalidInput)
	}

	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   req.Message,
		Type:      req.Type,
		CreatedAt: time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return notificationToResponse(n), nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]*dto.NotificationResponse, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notificationToResponse(n))
	}
	return responses, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if _, err := s.ownedNotification(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) error {
	if _, err := s.ownedNotification(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, notificationID); err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}

func (s *NotificationService) DeleteAllNotifications(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting notifications: %w", err)
	}
	return nil
}

func (s *NotificationService) ownedNotification(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, ErrNotificationNotFound
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}

func notificationToResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
