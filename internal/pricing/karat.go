package pricing

import (
	"math"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
)

// Gold karats carried in the reference price table.
const (
	Karat18 = "18"
	Karat21 = "21"
	Karat24 = "24"
)

var karatFactor = map[string]float64{
	Karat18: 18,
	Karat21: 21,
	Karat24: 24,
}

// ScalableKarat reports whether k can seed the gold karat table.
func ScalableKarat(k string) bool {
	_, ok := karatFactor[k]
	return ok
}

// RoundCents rounds half-up to 2 decimal places.
func RoundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ScaleKaratTable derives the full 18/21/24 gold price table from a reference
// price quoted at any one of those karats. The price is first normalized to
// karat 21, then 18 and 24 are scaled linearly from it, per currency,
// rounded to cents.
func ScaleKaratTable(karat string, price domain.CurrencyAmount) (domain.KaratPriceTable, error) {
	factor, ok := karatFactor[karat]
	if !ok {
		return nil, ErrUnknownKarat
	}

	usd21 := price.Usd * 21 / factor
	syp21 := price.Syp * 21 / factor

	return domain.KaratPriceTable{
		Karat18: {Usd: RoundCents(usd21 * 18 / 21), Syp: RoundCents(syp21 * 18 / 21)},
		Karat21: {Usd: RoundCents(usd21), Syp: RoundCents(syp21)},
		Karat24: {Usd: RoundCents(usd21 * 24 / 21), Syp: RoundCents(syp21 * 24 / 21)},
	}, nil
}
