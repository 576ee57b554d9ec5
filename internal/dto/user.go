package dto

// ── 用户模块 DTO ──

// StudentResponse 学生档案响应
type StudentResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Semester         int    `json:"semester"`
	BatchYear        int    `json:"batch_year"`
	GraduationStatus string `json:"graduation_status"`
}

// FacultyResponse 教职工档案响应
type FacultyResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID        uint             `json:"id"`
	UniqueID  string           `json:"unique_id"`
	Email     string           `json:"email"`
	Phone     *string          `json:"phone,omitempty"`
	Role      string           `json:"role"`
	CreatedAt string           `json:"created_at"`
	Student   *StudentResponse `json:"student,omitempty"`
	Faculty   *FacultyResponse `json:"faculty,omitempty"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role string `form:"role" binding:"omitempty,oneof=student faculty tutor admin"`
}
