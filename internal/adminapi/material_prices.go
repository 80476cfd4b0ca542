package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/pricing"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
)

// currencyPayload uses pointers so an omitted component is distinguishable
// from an explicit zero; both must be present on every price update.
type currencyPayload struct {
	Usd *float64 `json:"usd" validate:"required,gte=0"`
	Syp *float64 `json:"syp" validate:"required,gte=0"`
}

type materialPricePayload struct {
	Material     string           `json:"material" validate:"required"`
	Karat        string           `json:"karat" validate:"omitempty"`
	PricePerGram *currencyPayload `json:"pricePerGram" validate:"required"`
}

type repricePayload struct {
	Material string `json:"material" validate:"required"`
}

// registerMaterialPriceRoutes registers the reference price endpoints
func registerMaterialPriceRoutes() {
	webserver.ApiGET("/material-prices", listMaterialPrices)
	webserver.ApiGET("/material-prices/gold/:karat", getGoldKaratPrice)
	webserver.ApiPUT("/material-prices", setMaterialPrice)
	webserver.ApiPOST("/material-prices/update-products", repriceMaterial)
	webserver.ApiPOST("/material-prices/update-all-materials", repriceAllMaterials)
}

// priceErr maps pricing errors onto the HTTP error taxonomy.
func priceErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnknownMaterial),
		errors.Is(err, pricing.ErrUnknownKarat),
		errors.Is(err, pricing.ErrKaratRequired),
		errors.Is(err, pricing.ErrNegativePrice):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, pricing.ErrPriceNotFound):
		return fail(c, http.StatusNotFound, "PRICE_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, pricing.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Pricing operation failed", err.Error())
	}
}

func listMaterialPrices(c echo.Context) error {
	prices, err := webserver.AppCtx().PriceStore().List(c.Request().Context())
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, prices)
}

func getGoldKaratPrice(c echo.Context) error {
	karat := c.Param("karat")
	if !pricing.ScalableKarat(karat) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", pricing.ErrUnknownKarat.Error(), nil)
	}
	amount, err := webserver.AppCtx().PriceStore().GetGoldKarat(c.Request().Context(), karat)
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"material":     domain.MaterialGold,
		"karat":        karat,
		"pricePerGram": amount,
	})
}

func setMaterialPrice(c echo.Context) error {
	var payload materialPricePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse price parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updatedBy := "owner"
	if claims, err := webserver.TokenClaims(c); err == nil {
		updatedBy = claims.Username
	}

	amount := domain.CurrencyAmount{Usd: *payload.PricePerGram.Usd, Syp: *payload.PricePerGram.Syp}
	mp, err := webserver.AppCtx().PriceStore().Set(
		c.Request().Context(), payload.Material, payload.Karat, amount, updatedBy)
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, mp)
}

func repriceMaterial(c echo.Context) error {
	var payload repricePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse reprice parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	result, err := webserver.AppCtx().Repricer().Reprice(c.Request().Context(), payload.Material)
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"message":      fmt.Sprintf("updated %d products", result.UpdatedCount()),
		"updatedCount": result.UpdatedCount(),
		"material":     result.Material,
		"skipped":      result.Skipped,
	})
}

func repriceAllMaterials(c echo.Context) error {
	result, err := webserver.AppCtx().Repricer().RepriceAll(c.Request().Context())
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"message":        fmt.Sprintf("updated %d products across %d materials", result.TotalUpdated, result.MaterialsCount),
		"totalUpdated":   result.TotalUpdated,
		"materialsCount": result.MaterialsCount,
		"results":        result.Results,
	})
}
