package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/auth"
	"github.com/Skotchmaster/auction-api/internal/hash"
	"github.com/Skotchmaster/auction-api/internal/models"
	"github.com/Skotchmaster/auction-api/internal/mykafka"
	"github.com/Skotchmaster/auction-api/internal/repository"
	"github.com/Skotchmaster/auction-api/internal/validation"
)

type AuthHandler struct {
	Users     *repository.UserRepo
	JWTSecret []byte
	Producer  *mykafka.Producer
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidFields(c, []string{"request body must be valid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, validation.Details(err))
	}

	ctx := c.Request().Context()

	if _, err := h.Users.ByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, "cannot check username")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "cannot hash password")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	if err := h.Users.Create(ctx, &user); err != nil {
		return internalError(c, "cannot create user")
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"admin":    user.Admin,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidFields(c, []string{"request body must be valid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, validation.Details(err))
	}

	ctx := c.Request().Context()

	user, err := h.Users.ByUsername(ctx, req.Username)
	if err != nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
	}

	token, err := auth.SignAccessToken(user.ID, user.Admin, h.JWTSecret)
	if err != nil {
		return internalError(c, "cannot sign token")
	}

	c.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"admin": user.Admin,
	})
}
