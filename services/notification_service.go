package services

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/xerrors"

	"go.uber.org/zap"
)

const defaultNotificationLimit = 20

// Notifier dipakai service lain untuk mengirim notifikasi ke dropdown user.
type Notifier interface {
	Notify(ctx context.Context, userID uint, typ models.NotificationType, text, link string) error
}

type NotificationService struct {
	repo *repositories.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo *repositories.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, userID uint, typ models.NotificationType, text, link string) error {
	if userID == 0 {
		return xerrors.Validation("notification recipient is required")
	}
	n := models.Notification{
		UserID: userID,
		Type:   typ,
		Text:   text,
		Link:   link,
		Unread: true,
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return err
	}
	s.log.Debug("notification created", zap.Uint("user_id", userID), zap.String("type", string(typ)))
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Notification{}
	}
	return items, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
