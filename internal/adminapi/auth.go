package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Realname string `json:"realname" validate:"omitempty,max=128"`
	Mobile   string `json:"mobile" validate:"omitempty,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// registerAuthRoutes registers sign-in and customer sign-up endpoints
func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
	webserver.PubPOST("/auth/register", register)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Username = strings.TrimSpace(payload.Username)

	var opr domain.SysOpr
	err := GetDB(c).Where("username = ?", payload.Username).First(&opr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query account", err.Error())
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if opr.Password != hashed {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if !strings.EqualFold(opr.Status, common.ENABLED) {
		return fail(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}

	cfg := webserver.AppCtx().Config().Web
	token, err := webserver.IssueToken(cfg.JwtSecret, time.Duration(cfg.JwtExpireHours)*time.Hour, &opr)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
		Update("last_login", time.Now())

	return ok(c, map[string]interface{}{
		"token":    token,
		"level":    opr.Level,
		"username": opr.Username,
	})
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse account parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Username = strings.TrimSpace(payload.Username)

	var exists int64
	GetDB(c).Model(&domain.SysOpr{}).Where("username = ?", payload.Username).Count(&exists)
	if exists > 0 {
		return fail(c, http.StatusConflict, "USERNAME_EXISTS", "Username already taken", nil)
	}

	opr := domain.SysOpr{
		ID:        common.UUIDint64(),
		Realname:  strings.TrimSpace(payload.Realname),
		Mobile:    strings.TrimSpace(payload.Mobile),
		Email:     strings.TrimSpace(payload.Email),
		Username:  payload.Username,
		Password:  common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt()),
		Level:     domain.LevelCustomer,
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&opr).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", err.Error())
	}

	return ok(c, opr)
}
