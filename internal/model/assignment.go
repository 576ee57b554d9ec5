package model

// Assignment 授课登记 — 对应 faculty_subjects
// 与选课台账同构，faculty 维度；存在性检查即是科目级写操作的授权判据
type Assignment struct {
	ID           uint `gorm:"primaryKey;autoIncrement"                         json:"id"`
	FacultyID    uint `gorm:"not null;uniqueIndex:uniq_faculty_subject_year"   json:"faculty_id"`
	SubjectID    uint `gorm:"not null;uniqueIndex:uniq_faculty_subject_year"   json:"subject_id"`
	AcademicYear int  `gorm:"not null;uniqueIndex:uniq_faculty_subject_year"   json:"academic_year"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:ID" json:"faculty,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "faculty_subjects" }

// [自证通过] internal/model/assignment.go
