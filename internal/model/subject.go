package model

// 科目类型枚举
const (
	SubjectTheory = "theory"
	SubjectLab    = "lab"
)

// Subject 科目目录表 — 对应 subjects
// 不从属于任何实体的参考数据；code 全局唯一
type Subject struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"               json:"id"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"  json:"code"`
	Name        string `gorm:"type:varchar(100);not null"             json:"name"`
	SubjectType string `gorm:"type:varchar(10);not null"              json:"subject_type"` // theory | lab
	Semester    int    `gorm:"not null"                               json:"semester"`     // 1-8
	Credits     int    `gorm:"not null"                               json:"credits"`      // 1-6
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
