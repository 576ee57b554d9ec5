package dto

// ── 成绩模块 DTO ──

// RecordMarkRequest 成绩录入/覆盖请求
// MarksObtained 用指针允许显式提交 0 分
type RecordMarkRequest struct {
	StudentID     uint   `json:"student_id"     binding:"required"`
	SubjectID     uint   `json:"subject_id"     binding:"required"`
	ExamType      string `json:"exam_type"      binding:"required,oneof=series_test_1 series_test_2 lab_internal university"`
	MarksObtained *int   `json:"marks_obtained" binding:"required"`
	MaxMarks      int    `json:"max_marks"      binding:"required,min=1"`
}

// MarkResponse 成绩记录响应
type MarkResponse struct {
	ID            uint    `json:"id"`
	StudentID     uint    `json:"student_id"`
	SubjectID     uint    `json:"subject_id"`
	SubjectName   string  `json:"subject_name,omitempty"`
	ExamType      string  `json:"exam_type"`
	MarksObtained int     `json:"marks_obtained"`
	MaxMarks      int     `json:"max_marks"`
	Percentage    float64 `json:"percentage"`
	FacultyID     uint    `json:"faculty_id"`
	CreatedAt     string  `json:"created_at"`
}

// PassRateResponse 科目及格率响应
type PassRateResponse struct {
	SubjectID     uint    `json:"subject_id"`
	ExamType      string  `json:"exam_type"`
	PassMarkPct   float64 `json:"pass_mark_pct"`
	TotalStudents int     `json:"total_students"`
	Passed        int     `json:"passed"`
	PassRate      float64 `json:"pass_rate"`
}

// SubjectMarksSummary 学生单科成绩汇总
// Passed / UniversityPct 仅当存在 university 考试记录时有值
type SubjectMarksSummary struct {
	SubjectID     uint           `json:"subject_id"`
	SubjectName   string         `json:"subject_name,omitempty"`
	Marks         []MarkResponse `json:"marks"`
	UniversityPct *float64       `json:"university_pct,omitempty"`
	Passed        *bool          `json:"passed,omitempty"`
}

// StudentMarksSummary 学生成绩总览
// OverallPct 只对有 university 记录的科目求均值；无此类科目时为 nil
type StudentMarksSummary struct {
	StudentID  uint                  `json:"student_id"`
	Subjects   []SubjectMarksSummary `json:"subjects"`
	OverallPct *float64              `json:"overall_pct,omitempty"`
}
