package dto

// ── 授课登记 DTO ──

// AssignRequest 授课登记/取消请求
type AssignRequest struct {
	FacultyID    uint `json:"faculty_id"    binding:"required"`
	SubjectID    uint `json:"subject_id"    binding:"required"`
	AcademicYear int  `json:"academic_year" binding:"omitempty,min=2020"`
}

// AssignmentResponse 授课登记响应
type AssignmentResponse struct {
	ID           uint   `json:"id"`
	FacultyID    uint   `json:"faculty_id"`
	SubjectID    uint   `json:"subject_id"`
	SubjectName  string `json:"subject_name,omitempty"`
	AcademicYear int    `json:"academic_year"`
	WasCreated   bool   `json:"was_created"`
	CreatedAt    string `json:"created_at"`
}
