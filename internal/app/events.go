package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/pricing"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
	"github.com/kashkoool/nizargold-sub000/pkg/metrics"
)

// initEventHandlers subscribes the audit trail to pricing events so price
// mutations and bulk runs always leave an operation log row.
func (a *Application) initEventHandlers() {
	err := a.bus.Subscribe(pricing.EventPriceUpdated, func(mp *domain.MaterialPrice) {
		metrics.CounterAdd(metrics.MetricPriceUpdates, 1)
		a.writeOprLog(mp.UpdatedBy, "material_price_update",
			fmt.Sprintf("material=%s usd=%.2f syp=%.2f", mp.Material, mp.PricePerGram.Usd, mp.PricePerGram.Syp))
	})
	if err != nil {
		zap.L().Error("failed to subscribe price update events", zap.Error(err))
	}

	err = a.bus.Subscribe(pricing.EventRepriceCompleted, func(result *pricing.RepriceResult) {
		a.writeOprLog("system", "bulk_reprice",
			fmt.Sprintf("material=%s updated=%d skipped=%d",
				result.Material, len(result.Updated), len(result.Skipped)))
	})
	if err != nil {
		zap.L().Error("failed to subscribe reprice events", zap.Error(err))
	}
}

func (a *Application) writeOprLog(oprName, action, desc string) {
	log := &domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := a.gormDB.Create(log).Error; err != nil {
		zap.L().Warn("failed to write operation log", zap.Error(err))
	}
}
