package app

import (
	"time"

	"github.com/spf13/cast"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	var cfg domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(a.GetSettingsStringValue(category, key))
}

// GetSettingsBoolValue retrieves a boolean configuration value. The stored
// value may be "enabled"/"disabled" or any cast-able boolean literal.
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	value := a.GetSettingsStringValue(category, key)
	switch value {
	case "enabled":
		return true
	case "disabled":
		return false
	}
	return cast.ToBool(value)
}

// SaveSetting upserts one configuration value.
func (a *Application) SaveSetting(category, key, value string) error {
	result := a.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, key).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return a.gormDB.Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  key,
			Value: value,
		}).Error
	}
	return nil
}
