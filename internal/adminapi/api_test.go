package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kashkoool/nizargold-sub000/config"
	"github.com/kashkoool/nizargold-sub000/internal/app"
	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

type testEnv struct {
	engine *echo.Echo
	db     *gorm.DB
	cfg    *config.AppConfig
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := *config.DefaultAppConfig
	cfg.Logger.FileEnable = false
	cfg.Database.Type = "sqlite"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	application := app.NewApplication(&cfg)
	application.OverrideDB(db)

	webserver.Init(application)
	InitRouter()

	return &testEnv{engine: webserver.Engine(), db: db, cfg: &cfg}
}

func (env *testEnv) createAccount(t *testing.T, username, level string) *domain.SysOpr {
	t.Helper()
	opr := &domain.SysOpr{
		ID:       common.UUIDint64(),
		Username: username,
		Password: common.Sha256HashWithSalt("secret123", common.GetSecretSalt()),
		Level:    level,
		Status:   common.ENABLED,
	}
	require.NoError(t, env.db.Create(opr).Error)
	return opr
}

func (env *testEnv) token(t *testing.T, opr *domain.SysOpr) string {
	t.Helper()
	token, err := webserver.IssueToken(env.cfg.Web.JwtSecret, time.Hour, opr)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Code string                 `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestMaterialPriceEndpointsRequireOwner(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(http.MethodGet, "/api/material-prices", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customer := env.createAccount(t, "zaid", domain.LevelCustomer)
	rec = env.do(http.MethodGet, "/api/material-prices", env.token(t, customer), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetAndGetMaterialPrice(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	rec := env.do(http.MethodPut, "/api/material-prices", token,
		`{"material":"gold","karat":"21","pricePerGram":{"usd":65.50,"syp":85000}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "gold", data["material"])
	karats := data["gold_karat_prices"].(map[string]interface{})
	k18 := karats["18"].(map[string]interface{})
	assert.InDelta(t, 56.14, k18["usd"].(float64), 0.01)

	rec = env.do(http.MethodGet, "/api/material-prices/gold/24", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	price := data["pricePerGram"].(map[string]interface{})
	assert.InDelta(t, 74.86, price["usd"].(float64), 0.01)

	// unset karat path returns 404 after wiping the record
	require.NoError(t, env.db.Where("material = ?", "gold").Delete(&domain.MaterialPrice{}).Error)
	rec = env.do(http.MethodGet, "/api/material-prices/gold/24", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetMaterialPriceValidation(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	cases := []struct {
		name string
		body string
	}{
		{"unknown material", `{"material":"platinum","pricePerGram":{"usd":1,"syp":1}}`},
		{"gold without karat", `{"material":"gold","pricePerGram":{"usd":1,"syp":1}}`},
		{"negative price", `{"material":"silver","pricePerGram":{"usd":-1,"syp":1}}`},
		{"missing material", `{"pricePerGram":{"usd":1,"syp":1}}`},
		{"missing price", `{"material":"silver"}`},
		{"missing usd component", `{"material":"silver","pricePerGram":{"syp":11000}}`},
		{"missing syp component", `{"material":"silver","pricePerGram":{"usd":0.85}}`},
	}
	for _, tc := range cases {
		rec := env.do(http.MethodPut, "/api/material-prices", token, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.name)
	}
}

func TestOmittedPriceDoesNotClobberStored(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	rec := env.do(http.MethodPut, "/api/material-prices", token,
		`{"material":"silver","pricePerGram":{"usd":0.85,"syp":11000}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// a body without pricePerGram must be rejected, not stored as zero
	rec = env.do(http.MethodPut, "/api/material-prices", token, `{"material":"silver"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var mp domain.MaterialPrice
	require.NoError(t, env.db.Where("material = ?", "silver").First(&mp).Error)
	assert.InDelta(t, 0.85, mp.PricePerGram.Usd, 0.001)
	assert.InDelta(t, 11000, mp.PricePerGram.Syp, 0.001)
}

func TestRepriceSingleProduct(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	rec := env.do(http.MethodPut, "/api/material-prices", token,
		`{"material":"gold","karat":"21","pricePerGram":{"usd":65.50,"syp":85000}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, env.db.Create(&domain.Product{
		ID: 11, Name: "ring", Material: domain.MaterialGold,
		Karat: "18", ProductType: domain.ProductTypeRing,
		Weight: 10, CraftingFeeUsd: 5,
	}).Error)

	rec = env.do(http.MethodPost, "/api/products/11/reprice", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	gram := data["gram_price"].(map[string]interface{})
	assert.InDelta(t, 56.14, gram["usd"].(float64), 0.01)
	total := data["total_price"].(map[string]interface{})
	assert.InDelta(t, 611.40, total["usd"].(float64), 0.01)

	rec = env.do(http.MethodPost, "/api/products/999/reprice", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// silver has no reference price stored
	require.NoError(t, env.db.Create(&domain.Product{
		ID: 12, Name: "chain", Material: domain.MaterialSilver,
		Karat: "925", ProductType: domain.ProductTypeNecklace, Weight: 20,
	}).Error)
	rec = env.do(http.MethodPost, "/api/products/12/reprice", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkUpdateProducts(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	rec := env.do(http.MethodPut, "/api/material-prices", token,
		`{"material":"gold","karat":"21","pricePerGram":{"usd":65.50,"syp":85000}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	for i, karat := range []string{"18", "21", "24"} {
		require.NoError(t, env.db.Create(&domain.Product{
			ID: int64(i + 1), Name: "piece", Material: domain.MaterialGold,
			Karat: karat, ProductType: domain.ProductTypeRing, Weight: 10,
		}).Error)
	}

	rec = env.do(http.MethodPost, "/api/material-prices/update-products", token, `{"material":"gold"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	assert.EqualValues(t, 3, data["updatedCount"])
	assert.Equal(t, "gold", data["material"])

	// no reference price stored for silver
	rec = env.do(http.MethodPost, "/api/material-prices/update-products", token, `{"material":"silver"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/api/material-prices/update-all-materials", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.EqualValues(t, 3, data["totalUpdated"])
	assert.EqualValues(t, 1, data["materialsCount"])
}

func TestLoginAndRegister(t *testing.T) {
	env := setupEnv(t)
	env.createAccount(t, "nizar", domain.LevelOwner)

	rec := env.do(http.MethodPost, "/pub/auth/login", "", `{"username":"nizar","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, domain.LevelOwner, data["level"])

	rec = env.do(http.MethodPost, "/pub/auth/login", "", `{"username":"nizar","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/pub/auth/register", "",
		`{"username":"customer1","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/pub/auth/register", "",
		`{"username":"customer1","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProductCrudRecomputesTotals(t *testing.T) {
	env := setupEnv(t)
	owner := env.createAccount(t, "nizar", domain.LevelOwner)
	token := env.token(t, owner)

	body := `{
		"name":"gold ring",
		"material":"gold",
		"karat":"21",
		"product_type":"خاتم",
		"weight":10,
		"crafting_fee_usd":5,
		"gram_wage_syp":2000,
		"gram_price":{"usd":65.50,"syp":85000}
	}`
	rec := env.do(http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	total := data["total_price"].(map[string]interface{})
	assert.InDelta(t, 705.00, total["usd"].(float64), 0.001)
	assert.Equal(t, "ring", data["product_type"])

	// piece-based type switches the total formula
	body = `{
		"name":"gold lira",
		"material":"gold",
		"karat":"21",
		"product_type":"lira",
		"weight":8,
		"crafting_fee_usd":20,
		"gram_wage_syp":15000,
		"gram_price":{"usd":65.50,"syp":85000}
	}`
	rec = env.do(http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data = decodeData(t, rec)
	total = data["total_price"].(map[string]interface{})
	assert.InDelta(t, 544.00, total["usd"].(float64), 0.001)

	rec = env.do(http.MethodPost, "/api/products", token,
		`{"name":"x","material":"wood","karat":"21","product_type":"ring","weight":1,"gram_price":{"usd":1,"syp":1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/products?material=gold", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.EqualValues(t, 2, listResp.Total)

	rec = env.do(http.MethodGet, "/api/products/export", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "products.csv")
	assert.Contains(t, rec.Body.String(), "gold ring")
}
