package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/pricing"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
)

type materialStats struct {
	Material  string  `json:"material"`
	Count     int     `json:"count"`
	MeanUsd   float64 `json:"mean_usd"`
	MedianUsd float64 `json:"median_usd"`
	MinUsd    float64 `json:"min_usd"`
	MaxUsd    float64 `json:"max_usd"`
}

// registerDashboardRoutes registers the owner dashboard endpoints
func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/price-stats", priceStats)
}

func priceStats(c echo.Context) error {
	out := make([]materialStats, 0, len(domain.Materials))
	for _, material := range domain.Materials {
		var totals []float64
		err := GetDB(c).Model(&domain.Product{}).
			Where("material = ?", material).
			Pluck("total_price_usd", &totals).Error
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query totals", err.Error())
		}

		ms := materialStats{Material: material, Count: len(totals)}
		if len(totals) > 0 {
			mean, _ := stats.Mean(totals)
			median, _ := stats.Median(totals)
			min, _ := stats.Min(totals)
			max, _ := stats.Max(totals)
			ms.MeanUsd = pricing.RoundCents(mean)
			ms.MedianUsd = pricing.RoundCents(median)
			ms.MinUsd = min
			ms.MaxUsd = max
		}
		out = append(out, ms)
	}
	return ok(c, out)
}
