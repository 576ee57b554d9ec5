package model

// Faculty 教职工档案表 — 对应 faculty
// tutor 角色同样挂靠此表（tutor 是带额外权限的 faculty）
type Faculty struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID     uint    `gorm:"not null;uniqueIndex"       json:"user_id"`
	Name       string  `gorm:"type:varchar(100);not null" json:"name"`
	Department *string `gorm:"type:varchar(100)"          json:"department,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculty" }

// [自证通过] internal/model/faculty.go
