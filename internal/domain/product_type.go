package domain

// ProductType is the closed set of jewelry piece kinds sold by the shop. The
// storefront displays Arabic names; handlers accept either the slug or the
// Arabic form and the slug is what gets persisted.
type ProductType string

const (
	ProductTypeRing        ProductType = "ring"
	ProductTypeWeddingBand ProductType = "wedding-band"
	ProductTypeBracelet    ProductType = "bracelet"
	ProductTypeNecklace    ProductType = "necklace"
	ProductTypeEarring     ProductType = "earring"
	ProductTypeSet         ProductType = "set"
	ProductTypeMisbaha     ProductType = "misbaha"
	ProductTypeLira        ProductType = "lira"
	ProductTypeHalfLira    ProductType = "half-lira"
	ProductTypeQuarterLira ProductType = "quarter-lira"
	ProductTypeOunce       ProductType = "ounce"
)

var productTypeDisplay = map[ProductType]string{
	ProductTypeRing:        "خاتم",
	ProductTypeWeddingBand: "محبس",
	ProductTypeBracelet:    "اسوارة",
	ProductTypeNecklace:    "طقم رقبة",
	ProductTypeEarring:     "حلق",
	ProductTypeSet:         "طقم",
	ProductTypeMisbaha:     "مسبحة",
	ProductTypeLira:        "ليرة",
	ProductTypeHalfLira:    "نص ليرة",
	ProductTypeQuarterLira: "ربع ليرة",
	ProductTypeOunce:       "أونصة",
}

// pieceBased marks the minted types priced per piece rather than per gram.
var pieceBased = map[ProductType]bool{
	ProductTypeLira:        true,
	ProductTypeHalfLira:    true,
	ProductTypeQuarterLira: true,
	ProductTypeOunce:       true,
}

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	_, ok := productTypeDisplay[t]
	return ok
}

// Display returns the Arabic storefront name for t.
func (t ProductType) Display() string {
	return productTypeDisplay[t]
}

// PieceBased reports whether t is priced as a whole piece
// (total = weight*gram + fee) instead of per gram (total = (gram+fee)*weight).
func (t ProductType) PieceBased() bool {
	return pieceBased[t]
}

// ParseProductType resolves a slug or an Arabic display name to a ProductType.
func ParseProductType(s string) (ProductType, bool) {
	if t := ProductType(s); t.Valid() {
		return t, true
	}
	for t, display := range productTypeDisplay {
		if display == s {
			return t, true
		}
	}
	return "", false
}

// ProductTypes lists every known type slug.
func ProductTypes() []ProductType {
	types := make([]ProductType, 0, len(productTypeDisplay))
	for t := range productTypeDisplay {
		types = append(types, t)
	}
	return types
}
