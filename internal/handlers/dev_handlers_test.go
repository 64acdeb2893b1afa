package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/auction-api/internal/models"
)

func TestDevReset(t *testing.T) {
	env := newTestEnv(t)

	env.createUser("leftover", false)

	d := &DevHandler{DB: env.DB}
	rec, c := env.doJSONRequest(http.MethodGet, "/api/dev/reset", nil)

	require.NoError(t, d.Reset(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())

	require.Equal(t, int64(3), countRows(t, env.DB, &models.User{}))
	require.Equal(t, int64(2), countRows(t, env.DB, &models.Product{}))
	require.Equal(t, int64(3), countRows(t, env.DB, &models.Bid{}))

	var leftover models.User
	err := env.DB.Where("username = ?", "leftover").First(&leftover).Error
	require.Error(t, err)
}
