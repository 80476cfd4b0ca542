package pricing

import "errors"

var (
	// ErrUnknownMaterial rejects a material outside gold/silver/diamond.
	ErrUnknownMaterial = errors.New("material must be one of gold/silver/diamond")

	// ErrUnknownKarat rejects a gold karat outside 18/21/24.
	ErrUnknownKarat = errors.New("karat must be one of 18/21/24")

	// ErrKaratRequired is returned when a gold price update omits the karat.
	ErrKaratRequired = errors.New("karat is required for gold price updates")

	// ErrNegativePrice rejects a missing or negative price component.
	ErrNegativePrice = errors.New("price components usd and syp must be >= 0")

	// ErrPriceNotFound signals that no reference price is stored for a material.
	ErrPriceNotFound = errors.New("no price set for material")

	// ErrProductNotFound signals a reprice request for a product that does not exist.
	ErrProductNotFound = errors.New("product not found")
)
