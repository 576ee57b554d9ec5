package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// Role 决定建立哪种档案：student 需要 semester/batch_year，
// faculty/tutor 挂靠教职工档案，admin 无档案
type RegisterRequest struct {
	Email      string  `json:"email"       binding:"required,email"`
	Phone      *string `json:"phone"       binding:"omitempty,max=20"`
	Password   string  `json:"password"    binding:"required,min=8,max=72"`
	Role       string  `json:"role"        binding:"required,oneof=student faculty tutor admin"`
	Name       string  `json:"name"        binding:"required,min=2,max=100"`
	Semester   int     `json:"semester"    binding:"omitempty,min=1,max=8"`
	BatchYear  int     `json:"batch_year"  binding:"omitempty,min=2000"`
	Department *string `json:"department"  binding:"omitempty,max=100"`
}

// LoginRequest 登录请求；identifier 为编号（STU250001）或邮箱
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password"   binding:"required"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse 登录/刷新成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
