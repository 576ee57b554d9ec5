package dto

// ── 科目目录 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Code        string `json:"code"         binding:"required,min=2,max=20"`
	Name        string `json:"name"         binding:"required,min=2,max=100"`
	SubjectType string `json:"subject_type" binding:"required,oneof=theory lab"`
	Semester    int    `json:"semester"     binding:"required,min=1,max=8"`
	Credits     int    `json:"credits"      binding:"required,min=1,max=6"`
}

// UpdateSubjectRequest 更新科目请求（code 与 subject_type 不可变更）
type UpdateSubjectRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Semester *int    `json:"semester" binding:"omitempty,min=1,max=8"`
	Credits  *int    `json:"credits"  binding:"omitempty,min=1,max=6"`
}

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	Semester int `form:"semester" binding:"omitempty,min=1,max=8"`
}

// SubjectResponse 科目信息响应
type SubjectResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	SubjectType string `json:"subject_type"`
	Semester    int    `json:"semester"`
	Credits     int    `json:"credits"`
}
