package app

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "nizar"
	const defaultPassword = "nizargold"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "shop owner",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     domain.LevelOwner,
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default owner account", zap.Error(err))
		} else {
			zap.L().Info("initialized default owner account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query owner account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, domain.LevelOwner)
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = domain.LevelOwner
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair owner account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default owner account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// checkMaterialPrices seeds one zero-priced row per material. Rows are only
// ever mutated afterwards, never deleted.
func (a *Application) checkMaterialPrices() {
	for _, material := range domain.Materials {
		var count int64
		a.gormDB.Model(&domain.MaterialPrice{}).Where("material = ?", material).Count(&count)
		if count > 0 {
			continue
		}
		mp := &domain.MaterialPrice{
			ID:          common.UUIDint64(),
			Material:    material,
			UpdatedBy:   "seed",
			LastUpdated: time.Now(),
		}
		if material == domain.MaterialGold {
			mp.GoldKaratPrices = domain.KaratPriceTable{
				"18": {}, "21": {}, "24": {},
			}
		}
		if err := a.gormDB.Create(mp).Error; err != nil {
			zap.L().Error("failed to seed material price",
				zap.String("material", material), zap.Error(err))
		} else {
			zap.L().Info("seeded material price", zap.String("material", material))
		}
	}
}

type settingSchema struct {
	Key     string
	Default string
	Remark  string
}

var settingSchemas = []settingSchema{
	{Key: "pricing.nightly_reprice", Default: "disabled", Remark: "run a full catalog reprice every night"},
	{Key: "pricing.oplog_days", Default: "90", Remark: "operation log retention in days"},
	{Key: "storefront.page_size", Default: "20", Remark: "default storefront page size"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Remark,
			})
		}
	}
}
