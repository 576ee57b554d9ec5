package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// EnrollmentHandler 选课台账 HTTP 处理器
//
// academic_year 省略时由系统设置（兜底配置）注入当前学年，
// 不读系统时钟
type EnrollmentHandler struct {
	enrollSvc  service.EnrollmentService
	settingSvc service.SettingService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService, settingSvc service.SettingService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc, settingSvc: settingSvc}
}

// Enroll 单科选课（幂等，仅导师/管理员）
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.AcademicYear == 0 {
		req.AcademicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	result, err := h.enrollSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	if result.WasCreated {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// Unenroll 单科退课（幂等，仅导师/管理员）
// DELETE /api/v1/enrollments
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.AcademicYear == 0 {
		req.AcademicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	removed, err := h.enrollSvc.Unenroll(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, gin.H{"removed": removed})
}

// EnrollSemester 按学期默认课表批量选课（仅导师/管理员）
// POST /api/v1/enrollments/semester
func (h *EnrollmentHandler) EnrollSemester(c *gin.Context) {
	var req dto.SemesterEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.AcademicYear == 0 {
		req.AcademicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	results, err := h.enrollSvc.EnrollSemesterDefaults(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, gin.H{"results": results})
}

// Promote 批量升学（仅导师/管理员）
// POST /api/v1/enrollments/promote
func (h *EnrollmentHandler) Promote(c *gin.Context) {
	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.AcademicYear == 0 {
		req.AcademicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	results, err := h.enrollSvc.Promote(c.Request.Context(), &req)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, gin.H{"results": results})
}

// Stats 学年选课统计（仅导师/管理员）
// GET /api/v1/enrollments/stats?academic_year=2025
func (h *EnrollmentHandler) Stats(c *gin.Context) {
	year, ok := ParseUintQuery(c, "academic_year")
	if !ok {
		return
	}
	academicYear := int(year)
	if academicYear == 0 {
		academicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	stats, err := h.enrollSvc.Stats(c.Request.Context(), academicYear)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, stats)
}

// ListByStudent 学生选课列表
// GET /api/v1/students/:id/enrollments?academic_year=2025
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	year, ok := ParseUintQuery(c, "academic_year")
	if !ok {
		return
	}
	academicYear := int(year)
	if academicYear == 0 {
		academicYear = h.settingSvc.CurrentAcademicYear(c.Request.Context())
	}

	enrollments, err := h.enrollSvc.ListByStudent(c.Request.Context(), studentID, academicYear)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, enrollments)
}

func (h *EnrollmentHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14002, "科目不存在")
	case errors.Is(err, service.ErrYearOutOfRange):
		response.BadRequest(c, 14003, "学年超出允许范围")
	case errors.Is(err, service.ErrInvalidPromotion):
		response.BadRequest(c, 14004, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
