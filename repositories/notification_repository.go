package repositories

import (
	"context"
	"fiber-admin/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(DB *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: DB}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, items []models.Notification) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).CreateInBatches(&items, 100).Error
}

// ListByUser newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("unread = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var items []models.Notification
	err := q.Order("created_at desc").Order("id desc").Find(&items).Error
	return items, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND unread = ?", userID, true).
		Count(&count).Error
	return count, err
}

// MarkRead hanya boleh untuk notifikasi milik user sendiri
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uint) error {
	var n models.Notification
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return notFound(err, "notification")
	}
	if !n.Unread {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&n).Update("unread", false).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND unread = ?", userID, true).
		Update("unread", false)
	return res.RowsAffected, res.Error
}
