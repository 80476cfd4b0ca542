package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
)

// initJob registers background jobs. The nightly reprice runs the same bulk
// updater the HTTP surface uses and stays off unless the owner enables the
// pricing.nightly_reprice setting.
func (a *Application) initJob() {
	a.sched = cron.New(cron.WithLocation(time.Local))

	// nightly full-catalog reprice, settings-gated
	_, err := a.sched.AddFunc("30 2 * * *", func() {
		if !a.GetSettingsBoolValue("pricing", "nightly_reprice") {
			return
		}
		result, err := a.repricer.RepriceAll(context.Background())
		if err != nil {
			zap.L().Error("nightly reprice failed", zap.Error(err))
			return
		}
		zap.L().Info("nightly reprice finished",
			zap.Int("total_updated", result.TotalUpdated),
			zap.Int("materials", result.MaterialsCount))
	})
	if err != nil {
		zap.L().Error("failed to register nightly reprice job", zap.Error(err))
	}

	// daily operation log purge
	_, err = a.sched.AddFunc("10 3 * * *", func() {
		days := a.GetSettingsInt64Value("pricing", "oplog_days")
		if days <= 0 {
			days = 90
		}
		cutoff := time.Now().AddDate(0, 0, -int(days))
		result := a.gormDB.Where("opt_time < ?", cutoff).Delete(&domain.SysOprLog{})
		if result.Error != nil {
			zap.L().Error("operation log purge failed", zap.Error(result.Error))
			return
		}
		if result.RowsAffected > 0 {
			zap.L().Info("operation log purged", zap.Int64("rows", result.RowsAffected))
		}
	})
	if err != nil {
		zap.L().Error("failed to register oplog purge job", zap.Error(err))
	}
}
