package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepo
}

// GetUser returns the public profile graph: the user's listings with
// their bids, and the user's bids with the bidded product and that
// product's full bid list.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "user id must be an integer")
	}

	user, err := h.Users.GraphByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "user not found")
		}
		return internalError(c, "cannot get user")
	}

	return c.JSON(http.StatusOK, newUserGraph(user))
}
