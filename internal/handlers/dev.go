package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/fixtures"
)

// DevHandler exposes the fixture reset used by frontend development.
type DevHandler struct {
	DB *gorm.DB
}

func (h *DevHandler) Reset(c echo.Context) error {
	if err := fixtures.Regenerate(h.DB); err != nil {
		return internalError(c, "cannot regenerate fixtures")
	}
	return c.String(http.StatusOK, "OK")
}
