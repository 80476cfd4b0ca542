package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kashkoool/nizargold-sub000/internal/app"
	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/pkg/metrics"
	"go.uber.org/zap"
)

var server *WebServer

// WebServer wraps the echo engine and its route groups: pub (no token),
// store (any signed-in account) and api (owner only).
type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	store  *echo.Group
	api    *echo.Group
}

// Init builds the global web server from the application context.
func Init(appCtx app.AppContext) {
	server = NewWebServer(appCtx)
}

// NewWebServer assembles an echo engine with the shared middleware stack.
func NewWebServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JsoniterSerializer{}
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("db", appCtx.DB())
			metrics.CounterAdd(metrics.MetricApiRequests, 1)
			return next(c)
		}
	})

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.JwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
	})

	ws := &WebServer{
		appCtx: appCtx,
		root:   e,
		pub:    e.Group("/pub"),
		store:  e.Group("/store", jwtMiddleware),
		api:    e.Group("/api", jwtMiddleware, OwnerOnly),
	}
	return ws
}

// OwnerOnly rejects callers whose token does not carry the owner level.
func OwnerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := TokenClaims(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if claims.Level != domain.LevelOwner {
			return echo.NewHTTPError(http.StatusForbidden, "owner role required")
		}
		return next(c)
	}
}

// Listen starts serving and blocks until the listener stops.
func Listen() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return server.root.Shutdown(ctx)
}

// Engine exposes the underlying echo engine (tests).
func Engine() *echo.Echo {
	return server.root
}

// AppCtx exposes the application context to handler packages.
func AppCtx() app.AppContext {
	return server.appCtx
}

// PubGET registers an unauthenticated GET route.
func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

// PubPOST registers an unauthenticated POST route.
func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// StoreGET registers a GET route for any signed-in account.
func StoreGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.store.GET(path, h, m...)
}

// StorePOST registers a POST route for any signed-in account.
func StorePOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.store.POST(path, h, m...)
}

// StoreDELETE registers a DELETE route for any signed-in account.
func StoreDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.store.DELETE(path, h, m...)
}

// ApiGET registers an owner-only GET route.
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

// ApiPOST registers an owner-only POST route.
func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

// ApiPUT registers an owner-only PUT route.
func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

// ApiDELETE registers an owner-only DELETE route.
func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// CustomValidator adapts validator/v10 to echo's Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator creates the request payload validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (v *CustomValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
