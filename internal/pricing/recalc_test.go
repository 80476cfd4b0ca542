package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
)

func goldPriceFixture(t *testing.T) *domain.MaterialPrice {
	t.Helper()
	table, err := ScaleKaratTable(Karat21, domain.CurrencyAmount{Usd: 65.50, Syp: 85000})
	if err != nil {
		t.Fatal(err)
	}
	return &domain.MaterialPrice{
		Material:        domain.MaterialGold,
		PricePerGram:    table[Karat21],
		GoldKaratPrices: table,
	}
}

func TestComputeTotalGramBased(t *testing.T) {
	// a 10g ring at 65.50/g with a 5 USD fee folded into every gram
	p := &domain.Product{
		Material:       domain.MaterialGold,
		Karat:          "21",
		ProductType:    domain.ProductTypeRing,
		Weight:         10,
		CraftingFeeUsd: 5,
		GramWageSyp:    2000,
	}
	total := ComputeTotal(p, domain.CurrencyAmount{Usd: 65.50, Syp: 85000})
	assert.InDelta(t, 705.00, total.Usd, 0.001)
	assert.InDelta(t, (85000+2000)*10.0, total.Syp, 0.001)
}

func TestComputeTotalPieceBased(t *testing.T) {
	// a lira charges the fee once per piece
	p := &domain.Product{
		Material:       domain.MaterialGold,
		Karat:          "21",
		ProductType:    domain.ProductTypeLira,
		Weight:         8,
		CraftingFeeUsd: 20,
		GramWageSyp:    15000,
	}
	total := ComputeTotal(p, domain.CurrencyAmount{Usd: 65.50, Syp: 85000})
	assert.InDelta(t, 544.00, total.Usd, 0.001)
	assert.InDelta(t, 8*85000+15000.0, total.Syp, 0.001)
}

func TestSelectGramPriceGoldUsesKaratEntry(t *testing.T) {
	mp := goldPriceFixture(t)
	for _, karat := range []string{"18", "21", "24"} {
		p := &domain.Product{Material: domain.MaterialGold, Karat: karat}
		assert.Equal(t, mp.GoldKaratPrices[karat], SelectGramPrice(p, mp), "karat %s", karat)
	}
}

func TestSelectGramPriceGoldFallsBackToFlat(t *testing.T) {
	// 22-karat pieces have no table entry and sell at the flat price
	mp := goldPriceFixture(t)
	p := &domain.Product{Material: domain.MaterialGold, Karat: "22"}
	assert.Equal(t, mp.PricePerGram, SelectGramPrice(p, mp))
}

func TestSelectGramPriceNonGoldUsesFlat(t *testing.T) {
	mp := &domain.MaterialPrice{
		Material:     domain.MaterialSilver,
		PricePerGram: domain.CurrencyAmount{Usd: 0.85, Syp: 1100},
	}
	p := &domain.Product{Material: domain.MaterialSilver, Karat: "925"}
	assert.Equal(t, mp.PricePerGram, SelectGramPrice(p, mp))
}

func TestRecalculateSetsSnapshot(t *testing.T) {
	mp := goldPriceFixture(t)
	p := &domain.Product{
		Material:       domain.MaterialGold,
		Karat:          "18",
		ProductType:    domain.ProductTypeBracelet,
		Weight:         12.5,
		CraftingFeeUsd: 3,
		GramWageSyp:    4000,
	}
	Recalculate(p, mp)
	assert.Equal(t, mp.GoldKaratPrices["18"], p.GramPrice)
	assert.InDelta(t, (p.GramPrice.Usd+3)*12.5, p.TotalPrice.Usd, 0.001)
	assert.InDelta(t, (p.GramPrice.Syp+4000)*12.5, p.TotalPrice.Syp, 0.001)
}
