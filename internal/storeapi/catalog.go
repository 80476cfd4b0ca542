package storeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
)

// productView decorates a product with its Arabic type name for display.
type productView struct {
	domain.Product
	TypeDisplay string `json:"type_display"`
}

func toView(p domain.Product) productView {
	return productView{Product: p, TypeDisplay: p.ProductType.Display()}
}

// registerCatalogRoutes registers the public browsing endpoints
func registerCatalogRoutes() {
	webserver.PubGET("/products", browseProducts)
	webserver.PubGET("/products/:id", productDetail)
	webserver.PubGET("/products/:id/comments", listComments)
	webserver.PubGET("/product-types", listProductTypes)
}

func browseProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{})
	if material := strings.TrimSpace(c.QueryParam("material")); material != "" {
		db = db.Where("material = ?", material)
	}
	if ptype := strings.TrimSpace(c.QueryParam("type")); ptype != "" {
		if t, okParse := domain.ParseProductType(ptype); okParse {
			db = db.Where("product_type = ?", t)
		}
	}
	if karat := strings.TrimSpace(c.QueryParam("karat")); karat != "" {
		db = db.Where("karat = ?", karat)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Dialector.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}

	// pinned pieces lead the storefront
	var rows []domain.Product
	if err := db.Preload("Stones").Order("pinned DESC, created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}

	views := make([]productView, 0, len(rows))
	for _, p := range rows {
		views = append(views, toView(p))
	}
	return paged(c, views, total, page, pageSize)
}

func productDetail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var p domain.Product
	if err := GetDB(c).Preload("Stones").Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product")
	}

	var likeCount int64
	GetDB(c).Model(&domain.ProductLike{}).Where("product_id = ?", id).Count(&likeCount)
	p.LikeCount = likeCount

	return ok(c, toView(p))
}

func listComments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.ProductComment{}).Where("product_id = ?", id)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query comments")
	}

	var rows []domain.ProductComment
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query comments")
	}
	return paged(c, rows, total, page, pageSize)
}

type productTypeView struct {
	Slug       string `json:"slug"`
	Display    string `json:"display"`
	PieceBased bool   `json:"piece_based"`
}

func listProductTypes(c echo.Context) error {
	types := domain.ProductTypes()
	views := make([]productTypeView, 0, len(types))
	for _, t := range types {
		views = append(views, productTypeView{
			Slug:       string(t),
			Display:    t.Display(),
			PieceBased: t.PieceBased(),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Slug < views[j].Slug })
	return ok(c, views)
}
