package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// PredictionHandler ML 成绩预测 HTTP 处理器
type PredictionHandler struct {
	predictionSvc service.PredictionService
	userSvc       service.UserService
}

// NewPredictionHandler 创建 PredictionHandler
func NewPredictionHandler(predictionSvc service.PredictionService, userSvc service.UserService) *PredictionHandler {
	return &PredictionHandler{predictionSvc: predictionSvc, userSvc: userSvc}
}

// BatchUpsert 批量写入预测结果（仅管理员，供外部预测服务回传）
// POST /api/v1/predictions/batch
func (h *PredictionHandler) BatchUpsert(c *gin.Context) {
	var req dto.BatchPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	results, err := h.predictionSvc.BatchUpsert(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, gin.H{"results": results})
}

// ToggleVisibility 按科目切换学生端可见性（仅导师/管理员）
// PUT /api/v1/predictions/visibility
func (h *PredictionHandler) ToggleVisibility(c *gin.Context) {
	var req dto.ToggleVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	affected, err := h.predictionSvc.ToggleVisibility(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, gin.H{"affected": affected})
}

// Mine 当前学生可见的预测列表（隐藏的预测不返回）
// GET /api/v1/predictions/me
func (h *PredictionHandler) Mine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	studentID, err := h.userSvc.StudentProfileID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Forbidden(c, 10003, "当前账号没有学生档案")
			return
		}
		response.InternalError(c)
		return
	}

	predictions, err := h.predictionSvc.ListForStudent(c.Request.Context(), studentID, false)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, predictions)
}

// ListByStudent 指定学生的全部预测，含隐藏（仅导师/管理员）
// GET /api/v1/students/:id/predictions
func (h *PredictionHandler) ListByStudent(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	predictions, err := h.predictionSvc.ListForStudent(c.Request.Context(), studentID, true)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, predictions)
}

// ListBySubject 科目的全部预测（教师/导师/管理员）
// GET /api/v1/subjects/:id/predictions
func (h *PredictionHandler) ListBySubject(c *gin.Context) {
	subjectID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	predictions, err := h.predictionSvc.ListBySubject(c.Request.Context(), subjectID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, predictions)
}

// Delete 删除单条预测记录（仅管理员）
// DELETE /api/v1/predictions?student_id=1&subject_id=2
func (h *PredictionHandler) Delete(c *gin.Context) {
	studentID, ok := ParseUintQuery(c, "student_id")
	if !ok {
		return
	}
	subjectID, ok := ParseUintQuery(c, "subject_id")
	if !ok {
		return
	}
	if studentID == 0 || subjectID == 0 {
		response.BadRequest(c, 10001, "student_id 与 subject_id 不能为空")
		return
	}

	if err := h.predictionSvc.Delete(c.Request.Context(), studentID, subjectID); err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PredictionHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPredictionInvalid):
		response.BadRequest(c, 18001, err.Error())
	case errors.Is(err, service.ErrPredictionNotFound):
		response.NotFound(c, 18002, "预测记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14002, "科目不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/prediction_handler.go
