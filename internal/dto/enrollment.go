package dto

// ── 选课台账 DTO ──

// EnrollRequest 单科选课/退课请求
// AcademicYear 为 0 时由 Handler 注入当前学年（来自系统设置/配置，不读系统时钟）
type EnrollRequest struct {
	StudentID    uint `json:"student_id"    binding:"required"`
	SubjectID    uint `json:"subject_id"    binding:"required"`
	AcademicYear int  `json:"academic_year" binding:"omitempty,min=2020"`
}

// EnrollResponse 选课结果
type EnrollResponse struct {
	ID           uint   `json:"id"`
	StudentID    uint   `json:"student_id"`
	SubjectID    uint   `json:"subject_id"`
	AcademicYear int    `json:"academic_year"`
	WasCreated   bool   `json:"was_created"` // false = 已选过，幂等成功
	CreatedAt    string `json:"created_at"`
}

// SemesterEnrollRequest 学期默认课表批量选课请求
type SemesterEnrollRequest struct {
	StudentID    uint `json:"student_id"    binding:"required"`
	Semester     int  `json:"semester"      binding:"required,min=1,max=8"`
	AcademicYear int  `json:"academic_year" binding:"omitempty,min=2020"`
}

// EnrollResultItem 批量选课的单科结果（逐项成功/失败，不中断批次）
type EnrollResultItem struct {
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	Success     bool   `json:"success"`
	WasCreated  bool   `json:"was_created"`
	Error       string `json:"error,omitempty"`
}

// PromoteRequest 批量升学请求
type PromoteRequest struct {
	StudentIDs   []uint `json:"student_ids"   binding:"required,min=1,dive,required"`
	FromSemester int    `json:"from_semester" binding:"required,min=1,max=8"`
	ToSemester   int    `json:"to_semester"   binding:"required,min=1,max=8"`
	AcademicYear int    `json:"academic_year" binding:"omitempty,min=2020"`
}

// PromoteResultItem 升学的单学生结果
// 跨学生不做整体事务：前序学生的升学在后续失败时仍保持已提交
type PromoteResultItem struct {
	StudentID    uint               `json:"student_id"`
	Success      bool               `json:"success"`
	RemovedCount int64              `json:"removed_count"`
	Enrolled     []EnrollResultItem `json:"enrolled,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// SemesterEnrollmentStat 按学期聚合的选课统计
type SemesterEnrollmentStat struct {
	Semester         int   `json:"semester"`
	TotalEnrollments int64 `json:"total_enrollments"`
	DistinctStudents int64 `json:"distinct_students"`
	DistinctSubjects int64 `json:"distinct_subjects"`
}

// EnrollmentStatsResponse 学年选课统计响应
type EnrollmentStatsResponse struct {
	AcademicYear int                      `json:"academic_year"`
	Semesters    []SemesterEnrollmentStat `json:"semesters"`
}
