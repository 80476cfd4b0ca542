package domain

import "time"

// Product karats. Gold pieces carry 18/21/22/24; silver pieces carry 925.
var productKarats = map[string]bool{
	"18": true, "21": true, "22": true, "24": true, "925": true,
}

// ValidKarat reports whether k is an accepted product karat.
func ValidKarat(k string) bool {
	return productKarats[k]
}

// StringList is a JSON-serialized list column (image URLs).
type StringList []string

// Product is a catalog item. Price fields are a snapshot: they reflect the
// MaterialPrice current at the last recalculation (save or bulk reprice) and
// go stale when the reference price moves until the next explicit reprice.
type Product struct {
	ID             int64          `json:"id,string" form:"id"`
	OwnerID        int64          `gorm:"index" json:"owner_id,string" form:"owner_id"`
	Name           string         `gorm:"index" json:"name" form:"name"`
	Description    string         `gorm:"size:2048" json:"description" form:"description"`
	Material       string         `gorm:"index;size:16" json:"material" form:"material"`
	Karat          string         `gorm:"size:8" json:"karat" form:"karat"`
	ProductType    ProductType    `gorm:"size:32" json:"product_type" form:"product_type"`
	Weight         float64        `json:"weight" form:"weight"`
	CraftingFeeUsd float64        `json:"crafting_fee_usd" form:"crafting_fee_usd"`
	GramWageSyp    float64        `json:"gram_wage_syp" form:"gram_wage_syp"`
	GramPrice      CurrencyAmount `gorm:"embedded;embeddedPrefix:gram_price_" json:"gram_price"`
	TotalPrice     CurrencyAmount `gorm:"embedded;embeddedPrefix:total_price_" json:"total_price"`
	Stones         []ProductStone `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"stones,omitempty"`
	Images         StringList     `gorm:"serializer:json" json:"images,omitempty"`
	Pinned         bool           `gorm:"index" json:"pinned" form:"pinned"`
	LikeCount      int64          `gorm:"-" json:"like_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}

// ProductStone is a gemstone mounted on a diamond product.
type ProductStone struct {
	ID        int64   `json:"id,string" form:"id"`
	ProductID int64   `gorm:"index" json:"product_id,string" form:"product_id"`
	Kind      string  `gorm:"size:64" json:"kind" form:"kind"`
	Color     string  `gorm:"size:32" json:"color" form:"color"`
	Clarity   string  `gorm:"size:32" json:"clarity" form:"clarity"`
	Weight    float64 `json:"weight" form:"weight"`
	Count     int     `json:"count" form:"count"`
}

// TableName Specify table name
func (ProductStone) TableName() string {
	return "product_stone"
}
