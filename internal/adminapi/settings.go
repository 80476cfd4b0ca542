package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
)

type settingPayload struct {
	Type  string `json:"type" validate:"required,min=1,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Value string `json:"value" validate:"omitempty,max=512"`
}

// registerSettingsRoutes registers system settings endpoints
func registerSettingsRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiPUT("/settings", saveSetting)
}

func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, rows)
}

func saveSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	err := webserver.AppCtx().SaveSetting(
		strings.TrimSpace(payload.Type), strings.TrimSpace(payload.Name), strings.TrimSpace(payload.Value))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save setting", err.Error())
	}
	return ok(c, payload)
}
