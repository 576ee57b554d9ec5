package model

import "math"

// DefaultAttendanceThreshold 出勤率预警阈值（百分比）
const DefaultAttendanceThreshold = 75.0

// Attendance 考勤表 — 对应 attendance
// (student_id, subject_id) 二元唯一，无学年维度：跨学年重修会覆盖旧记录，
// 这是既定行为而非疏漏。覆盖写刷新 total/attended/faculty_id/updated_at，
// 调用方提交的是累计计数而非增量（last-write-wins）。
type Attendance struct {
	ID              uint `gorm:"primaryKey;autoIncrement"                              json:"id"`
	StudentID       uint `gorm:"not null;uniqueIndex:uniq_student_subject_attendance"  json:"student_id"`
	SubjectID       uint `gorm:"not null;uniqueIndex:uniq_student_subject_attendance"  json:"subject_id"`
	TotalClasses    int  `gorm:"not null" json:"total_classes"`
	AttendedClasses int  `gorm:"not null" json:"attended_classes"`
	FacultyID       uint `gorm:"not null" json:"faculty_id"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:ID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// ── 派生指标（纯计算，不落库，读取时实时求值）──

// Percentage 出勤率，四舍五入（远离零）保留两位小数；无课时返回 0
func (a *Attendance) Percentage() float64 {
	if a.TotalClasses <= 0 {
		return 0
	}
	pct := float64(a.AttendedClasses) / float64(a.TotalClasses) * 100
	return math.Round(pct*100) / 100
}

// IsBelowThreshold 出勤率是否低于阈值
func (a *Attendance) IsBelowThreshold(threshold float64) bool {
	return a.Percentage() < threshold
}

// ClassesNeeded 连续全勤多少节课才能回到阈值之上
//
// 解 (attended + x) / (total + x) = threshold/100：
//
//	x = ceil((threshold·total − 100·attended) / (100 − threshold))
//
// 已达标返回 0；threshold ≥ 100 时无解，同样返回 0
func (a *Attendance) ClassesNeeded(threshold float64) int {
	if threshold >= 100 {
		return 0
	}
	if a.Percentage() >= threshold {
		return 0
	}
	x := math.Ceil((threshold*float64(a.TotalClasses) - 100*float64(a.AttendedClasses)) / (100 - threshold))
	if x < 0 {
		return 0
	}
	return int(x)
}

// MaxMissable 在不跌破阈值的前提下还能缺多少节课
//
//	x = floor(100·attended/threshold − total)
//
// 假设 total 只增不减；已低于阈值返回 0
func (a *Attendance) MaxMissable(threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	if a.Percentage() < threshold {
		return 0
	}
	x := math.Floor(100*float64(a.AttendedClasses)/threshold - float64(a.TotalClasses))
	if x < 0 {
		return 0
	}
	return int(x)
}

// [自证通过] internal/model/attendance.go
