package pricing

import "github.com/kashkoool/nizargold-sub000/internal/domain"

// SelectGramPrice picks the per-gram price a product sells at: for gold the
// entry matching the product's karat, falling back to the flat price when the
// karat has no entry (22-karat pieces); anything else uses the flat price.
func SelectGramPrice(p *domain.Product, mp *domain.MaterialPrice) domain.CurrencyAmount {
	if p.Material == domain.MaterialGold {
		if amount, ok := mp.GoldKaratPrices[p.Karat]; ok {
			return amount
		}
	}
	return mp.PricePerGram
}

// ComputeTotal prices the whole piece from a gram price and the product's own
// fee fields. Minted pieces (lira family, ounce) charge the crafting fee once
// per piece; everything else folds the fee into every gram.
//
// Totals are stored as raw floats, unrounded; only the karat table rounds
// to cents.
func ComputeTotal(p *domain.Product, gram domain.CurrencyAmount) domain.CurrencyAmount {
	if p.ProductType.PieceBased() {
		return domain.CurrencyAmount{
			Usd: p.Weight*gram.Usd + p.CraftingFeeUsd,
			Syp: p.Weight*gram.Syp + p.GramWageSyp,
		}
	}
	return domain.CurrencyAmount{
		Usd: (gram.Usd + p.CraftingFeeUsd) * p.Weight,
		Syp: (gram.Syp + p.GramWageSyp) * p.Weight,
	}
}

// Recalculate refreshes a product's price snapshot from the given reference
// price. It mutates p only; persisting is the caller's job.
func Recalculate(p *domain.Product, mp *domain.MaterialPrice) {
	p.GramPrice = SelectGramPrice(p, mp)
	p.TotalPrice = ComputeTotal(p, p.GramPrice)
}
