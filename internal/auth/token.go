package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to the request context
// by the middleware: its user id plus the admin override flag.
type Principal struct {
	ID    uint
	Admin bool
}

const accessTokenTTL = 24 * time.Hour

func SignAccessToken(userID uint, admin bool, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"admin": admin,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseAccessToken(raw string, secret []byte) (Principal, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return Principal{}, fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("cannot parse claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Principal{}, fmt.Errorf("token missing sub claim")
	}

	admin, _ := claims["admin"].(bool)

	return Principal{ID: uint(sub), Admin: admin}, nil
}
