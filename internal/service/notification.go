package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type NotificationService struct {
	Repo *repo.GormRepo
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, isRead *bool) (*NotificationList, error) {
	items, unread, err := s.Repo.ListNotifications(ctx, userID, isRead)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *NotificationService) Create(ctx context.Context, req transport.NotificationRequest) (*models.Notification, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, validation("invalid field: userId")
	}
	n := models.Notification{
		UserID:    userID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		ActionURL: req.ActionURL,
	}
	if req.RelatedID != "" {
		id, err := uuid.Parse(req.RelatedID)
		if err != nil {
			return nil, validation("invalid field: relatedId")
		}
		n.RelatedID = &id
	}
	return s.Push(ctx, &n)
}

// Push stores a notification produced inside the service.
func (s *NotificationService) Push(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := s.Repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	n, err := s.Repo.MarkNotificationRead(ctx, id, userID)
	if err != nil {
		return nil, orNotFound(err, "Notification not found")
	}
	return n, nil
}
