package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/pricing"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

type stonePayload struct {
	Kind    string  `json:"kind" validate:"required,min=1,max=64"`
	Color   string  `json:"color" validate:"omitempty,max=32"`
	Clarity string  `json:"clarity" validate:"omitempty,max=32"`
	Weight  float64 `json:"weight" validate:"gte=0"`
	Count   int     `json:"count" validate:"gte=0"`
}

type productPayload struct {
	Name           string                `json:"name" validate:"required,min=1,max=200"`
	Description    string                `json:"description" validate:"omitempty,max=2048"`
	Material       string                `json:"material" validate:"required"`
	Karat          string                `json:"karat" validate:"required"`
	ProductType    string                `json:"product_type" validate:"required"`
	Weight         float64               `json:"weight" validate:"gt=0"`
	CraftingFeeUsd float64               `json:"crafting_fee_usd" validate:"gte=0"`
	GramWageSyp    float64               `json:"gram_wage_syp" validate:"gte=0"`
	GramPrice      domain.CurrencyAmount `json:"gram_price"`
	Stones         []stonePayload        `json:"stones" validate:"omitempty,dive"`
	Images         []string              `json:"images" validate:"omitempty,max=12,dive,max=1024"`
	Pinned         bool                  `json:"pinned"`
}

// registerProductRoutes registers owner product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/export", exportProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiPOST("/products/:id/pin", pinProduct)
	webserver.ApiPOST("/products/:id/reprice", repriceProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// checkProductPayload normalizes and validates the enum-ish fields; returns a
// descriptive message on failure.
func checkProductPayload(payload *productPayload) (domain.ProductType, string) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return "", "Name is required"
	}
	if !domain.ValidMaterial(payload.Material) {
		return "", "Material must be one of gold/silver/diamond"
	}
	if !domain.ValidKarat(payload.Karat) {
		return "", "Karat must be one of 18/21/22/24/925"
	}
	ptype, okType := domain.ParseProductType(payload.ProductType)
	if !okType {
		return "", "Unknown product type"
	}
	if payload.GramPrice.Usd < 0 || payload.GramPrice.Syp < 0 {
		return "", "Gram price components must be >= 0"
	}
	if payload.Material != domain.MaterialDiamond && len(payload.Stones) > 0 {
		return "", "Stones are only accepted on diamond products"
	}
	return ptype, ""
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Filters: free text, material, type, karat
	q := strings.TrimSpace(c.QueryParam("q"))
	material := strings.TrimSpace(c.QueryParam("material"))
	ptype := strings.TrimSpace(c.QueryParam("type"))
	karat := strings.TrimSpace(c.QueryParam("karat"))

	// Sorting: whitelist allowed sort columns to avoid SQL injection
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"weight":     "weight",
		"total_usd":  "total_price_usd",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okSort := allowed[sortField]
	if !okSort || sortCol == "" {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Dialector.Name(), "postgres") {
			db = db.Where("name ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?",
				"%"+strings.ToLower(q)+"%", "%"+strings.ToLower(q)+"%")
		}
	}
	if material != "" {
		db = db.Where("material = ?", material)
	}
	if ptype != "" {
		if t, okParse := domain.ParseProductType(ptype); okParse {
			db = db.Where("product_type = ?", t)
		}
	}
	if karat != "" {
		db = db.Where("karat = ?", karat)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Preload("Stones").Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Preload("Stones").Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	ptype, msg := checkProductPayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	ownerID := int64(0)
	if claims, err := webserver.TokenClaims(c); err == nil {
		ownerID = claims.UserID
	}

	now := time.Now()
	p := domain.Product{
		ID:             common.UUIDint64(),
		OwnerID:        ownerID,
		Name:           payload.Name,
		Description:    strings.TrimSpace(payload.Description),
		Material:       payload.Material,
		Karat:          payload.Karat,
		ProductType:    ptype,
		Weight:         payload.Weight,
		CraftingFeeUsd: payload.CraftingFeeUsd,
		GramWageSyp:    payload.GramWageSyp,
		GramPrice:      payload.GramPrice,
		Images:         payload.Images,
		Pinned:         payload.Pinned,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// totals derive from the submitted gram price at save time
	p.TotalPrice = pricing.ComputeTotal(&p, p.GramPrice)

	for _, s := range payload.Stones {
		p.Stones = append(p.Stones, domain.ProductStone{
			ID:        common.UUIDint64(),
			ProductID: p.ID,
			Kind:      strings.TrimSpace(s.Kind),
			Color:     strings.TrimSpace(s.Color),
			Clarity:   strings.TrimSpace(s.Clarity),
			Weight:    s.Weight,
			Count:     s.Count,
		})
	}

	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	ptype, msg := checkProductPayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Name = payload.Name
	p.Description = strings.TrimSpace(payload.Description)
	p.Material = payload.Material
	p.Karat = payload.Karat
	p.ProductType = ptype
	p.Weight = payload.Weight
	p.CraftingFeeUsd = payload.CraftingFeeUsd
	p.GramWageSyp = payload.GramWageSyp
	p.GramPrice = payload.GramPrice
	p.Images = payload.Images
	p.Pinned = payload.Pinned
	p.UpdatedAt = time.Now()
	p.TotalPrice = pricing.ComputeTotal(&p, p.GramPrice)

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stones").Save(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&domain.ProductStone{}).Error; err != nil {
			return err
		}
		for _, s := range payload.Stones {
			stone := domain.ProductStone{
				ID:        common.UUIDint64(),
				ProductID: p.ID,
				Kind:      strings.TrimSpace(s.Kind),
				Color:     strings.TrimSpace(s.Color),
				Clarity:   strings.TrimSpace(s.Clarity),
				Weight:    s.Weight,
				Count:     s.Count,
			}
			if err := tx.Create(&stone).Error; err != nil {
				return err
			}
			p.Stones = append(p.Stones, stone)
		}
		return nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func pinProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"pinned": !p.Pinned, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": strconv.FormatInt(id, 10), "pinned": !p.Pinned})
}

// repriceProduct refreshes one product from its material's current reference
// price, the single-item counterpart of the bulk updater.
func repriceProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := webserver.AppCtx().Repricer().RepriceOne(c.Request().Context(), id)
	if err != nil {
		return priceErr(c, err)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductStone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": strconv.FormatInt(id, 10)})
}

// productCSV is the flat export row shape.
type productCSV struct {
	ID          int64   `csv:"id"`
	Name        string  `csv:"name"`
	Material    string  `csv:"material"`
	Karat       string  `csv:"karat"`
	ProductType string  `csv:"product_type"`
	Weight      float64 `csv:"weight"`
	GramUsd     float64 `csv:"gram_price_usd"`
	GramSyp     float64 `csv:"gram_price_syp"`
	TotalUsd    float64 `csv:"total_price_usd"`
	TotalSyp    float64 `csv:"total_price_syp"`
	Pinned      bool    `csv:"pinned"`
}

func exportProducts(c echo.Context) error {
	var rows []domain.Product
	if err := GetDB(c).Order("id ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	records := make([]productCSV, 0, len(rows))
	for _, p := range rows {
		records = append(records, productCSV{
			ID:          p.ID,
			Name:        p.Name,
			Material:    p.Material,
			Karat:       p.Karat,
			ProductType: string(p.ProductType),
			Weight:      p.Weight,
			GramUsd:     p.GramPrice.Usd,
			GramSyp:     p.GramPrice.Syp,
			TotalUsd:    p.TotalPrice.Usd,
			TotalSyp:    p.TotalPrice.Syp,
			Pinned:      p.Pinned,
		})
	}

	data, err := gocsv.MarshalString(&records)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build CSV", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
