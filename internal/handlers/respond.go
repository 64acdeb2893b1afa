package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the single error body shape used by every route.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: msg})
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: "user not granted"})
}

func invalidFields(c echo.Context, details []string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid or missing fields",
		Details: details,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func internalError(c echo.Context, msg string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}
