package domain

import "time"

// Materials handled by the shop.
const (
	MaterialGold    = "gold"
	MaterialSilver  = "silver"
	MaterialDiamond = "diamond"
)

// Materials lists every known material in seeding order.
var Materials = []string{MaterialGold, MaterialSilver, MaterialDiamond}

// ValidMaterial reports whether m names a known material.
func ValidMaterial(m string) bool {
	switch m {
	case MaterialGold, MaterialSilver, MaterialDiamond:
		return true
	}
	return false
}

// CurrencyAmount is a price expressed in both trading currencies.
type CurrencyAmount struct {
	Usd float64 `json:"usd" form:"usd"`
	Syp float64 `json:"syp" form:"syp"`
}

// KaratPriceTable maps a gold karat ("18"/"21"/"24") to its per-gram price.
type KaratPriceTable map[string]CurrencyAmount

// MaterialPrice is the current reference price of one material. One row per
// material, created at seed time and mutated in place afterwards. For gold the
// karat table is kept alongside the flat price; the karat-21 entry always
// mirrors PricePerGram.
type MaterialPrice struct {
	ID              int64           `json:"id,string" form:"id"`
	Material        string          `gorm:"uniqueIndex;size:16" json:"material" form:"material"`
	PricePerGram    CurrencyAmount  `gorm:"embedded;embeddedPrefix:price_" json:"price_per_gram"`
	GoldKaratPrices KaratPriceTable `gorm:"serializer:json" json:"gold_karat_prices,omitempty"`
	UpdatedBy       string          `json:"updated_by"`
	LastUpdated     time.Time       `json:"last_updated"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (MaterialPrice) TableName() string {
	return "material_price"
}
