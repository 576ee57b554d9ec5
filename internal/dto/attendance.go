package dto

// ── 考勤模块 DTO ──

// UpsertAttendanceRequest 考勤覆盖写请求
// 计数为累计值而非增量（last-write-wins）；指针类型允许显式提交 0
type UpsertAttendanceRequest struct {
	StudentID       uint `json:"student_id"       binding:"required"`
	SubjectID       uint `json:"subject_id"       binding:"required"`
	TotalClasses    *int `json:"total_classes"    binding:"required"`
	AttendedClasses *int `json:"attended_classes" binding:"required"`
}

// BulkAttendanceRequest 批量考勤请求
type BulkAttendanceRequest struct {
	Records []UpsertAttendanceRequest `json:"records" binding:"required,min=1"`
}

// AttendanceResponse 考勤记录响应（派生指标实时计算，不落库）
type AttendanceResponse struct {
	ID              uint    `json:"id"`
	StudentID       uint    `json:"student_id"`
	SubjectID       uint    `json:"subject_id"`
	SubjectName     string  `json:"subject_name,omitempty"`
	TotalClasses    int     `json:"total_classes"`
	AttendedClasses int     `json:"attended_classes"`
	Percentage      float64 `json:"attendance_percentage"`
	BelowThreshold  bool    `json:"below_threshold"`
	ClassesNeeded   int     `json:"classes_needed"` // 回到阈值还需连续出勤的课时
	MaxMissable     int     `json:"max_missable"`   // 不跌破阈值还能缺的课时
	UpdatedAt       string  `json:"updated_at"`
}

// BulkAttendanceResult 批量考勤的单条结果（保持输入顺序）
type BulkAttendanceResult struct {
	Index   int                     `json:"index"`
	Success bool                    `json:"success"`
	Record  *AttendanceResponse     `json:"record,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Input   UpsertAttendanceRequest `json:"input"`
}

// SubjectAttendanceStats 科目维度考勤聚合
type SubjectAttendanceStats struct {
	SubjectID      uint    `json:"subject_id"`
	TotalStudents  int     `json:"total_students"`
	MeanPercentage float64 `json:"mean_percentage"`
	MinPercentage  float64 `json:"min_percentage"`
	MaxPercentage  float64 `json:"max_percentage"`
	AboveThreshold int     `json:"above_threshold"`
	BelowThreshold int     `json:"below_threshold"`
	PassRate       float64 `json:"pass_rate"` // 达标（≥阈值）比例
}

// StudentOverallAttendance 学生维度考勤汇总
// 总出勤率按课时总和计算（sum-of-sums），而非各科百分比的均值
type StudentOverallAttendance struct {
	StudentID         uint                 `json:"student_id"`
	TotalClasses      int                  `json:"total_classes"`
	AttendedClasses   int                  `json:"attended_classes"`
	OverallPercentage float64              `json:"overall_percentage"`
	Subjects          []AttendanceResponse `json:"subjects"`
}
