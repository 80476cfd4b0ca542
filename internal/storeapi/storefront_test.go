package storeapi

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

type storeEnv struct {
	engine *echo.Echo
	db     *gorm.DB
	cfg    *config.AppConfig
}

func setupStore(t *testing.T) *storeEnv {
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

	return &storeEnv{engine: webserver.Engine(), db: db, cfg: &cfg}
}

func (env *storeEnv) customer(t *testing.T, username string) (int64, string) {
	t.Helper()
	opr := &domain.SysOpr{
		ID:       common.UUIDint64(),
		Username: username,
		Password: common.Sha256HashWithSalt("secret123", common.GetSecretSalt()),
		Level:    domain.LevelCustomer,
		Status:   common.ENABLED,
	}
	require.NoError(t, env.db.Create(opr).Error)
	token, err := webserver.IssueToken(env.cfg.Web.JwtSecret, time.Hour, opr)
	require.NoError(t, err)
	return opr.ID, token
}

func (env *storeEnv) seedProduct(t *testing.T, id int64, name string, pinned bool) {
	t.Helper()
	require.NoError(t, env.db.Create(&domain.Product{
		ID: id, Name: name, Material: domain.MaterialGold, Karat: "21",
		ProductType: domain.ProductTypeRing, Weight: 5, Pinned: pinned,
		CreatedAt: time.Now().Add(-time.Duration(id) * time.Minute),
	}).Error)
}

func (env *storeEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
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

func TestBrowseProductsPinnedFirst(t *testing.T) {
	env := setupStore(t)
	env.seedProduct(t, 1, "plain ring", false)
	env.seedProduct(t, 2, "featured ring", true)

	rec := env.do(http.MethodGet, "/pub/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total int64 `json:"total"`
		Data  []struct {
			Name        string `json:"name"`
			Pinned      bool   `json:"pinned"`
			TypeDisplay string `json:"type_display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.Total)
	assert.Equal(t, "featured ring", resp.Data[0].Name)
	assert.True(t, resp.Data[0].Pinned)
	assert.Equal(t, "خاتم", resp.Data[0].TypeDisplay)
}

func TestProductDetailAndTypes(t *testing.T) {
	env := setupStore(t)
	env.seedProduct(t, 7, "gold ring", false)

	rec := env.do(http.MethodGet, "/pub/products/7", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/pub/products/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/pub/product-types", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []struct {
			Slug       string `json:"slug"`
			Display    string `json:"display"`
			PieceBased bool   `json:"piece_based"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, len(domain.ProductTypes()))
	for _, v := range resp.Data {
		if v.Slug == "lira" {
			assert.True(t, v.PieceBased)
			assert.Equal(t, "ليرة", v.Display)
		}
	}
}

func TestLikeAndFavoriteToggle(t *testing.T) {
	env := setupStore(t)
	env.seedProduct(t, 3, "necklace", false)
	_, token := env.customer(t, "amal")

	rec := env.do(http.MethodPost, "/store/products/3/like", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/store/products/3/like", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"liked":true`)

	rec = env.do(http.MethodPost, "/store/products/3/like", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"liked":false`)

	rec = env.do(http.MethodPost, "/store/products/3/favorite", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"favorite":true`)

	rec = env.do(http.MethodGet, "/store/favorites", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)

	rec = env.do(http.MethodPost, "/store/products/999/like", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeCountSurvivesProductResave(t *testing.T) {
	env := setupStore(t)
	env.seedProduct(t, 9, "signet ring", false)
	_, token := env.customer(t, "amal")

	rec := env.do(http.MethodPost, "/store/products/9/like", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// a product row rewrite must not reset the displayed count
	var p domain.Product
	require.NoError(t, env.db.First(&p, 9).Error)
	require.NoError(t, env.db.Save(&p).Error)

	rec = env.do(http.MethodGet, "/pub/products/9", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			LikeCount int64 `json:"like_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Data.LikeCount)
}

func TestCommentLifecycle(t *testing.T) {
	env := setupStore(t)
	env.seedProduct(t, 5, "bracelet", false)
	_, aToken := env.customer(t, "amal")
	_, bToken := env.customer(t, "basel")

	rec := env.do(http.MethodPost, "/store/products/5/comments", aToken, `{"body":"beautiful piece"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	rec = env.do(http.MethodPost, "/store/products/5/comments", aToken, `{"body":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/pub/products/5/comments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "beautiful piece")

	// another customer cannot delete it
	rec = env.do(http.MethodDelete, "/store/comments/"+created.Data.ID, bToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the author can
	rec = env.do(http.MethodDelete, "/store/comments/"+created.Data.ID, aToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/pub/products/5/comments", "", "")
	var listResp struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.EqualValues(t, 0, listResp.Total)
}
