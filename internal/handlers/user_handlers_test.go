package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUserGraph(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("alice", false)
	bob := env.createUser("bob", true)

	lamp := env.createProduct(alice, "lamp", 20)
	chair := env.createProduct(bob, "chair", 50)

	env.createBid(lamp, bob, 25)
	env.createBid(lamp, alice, 30)
	env.createBid(chair, alice, 55)

	rec, c := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(bob.ID))

	require.NoError(t, env.U.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var graph UserGraph
	decodeJSON(t, rec, &graph)
	require.Equal(t, bob.ID, graph.ID)
	require.Equal(t, "bob", graph.Username)
	require.True(t, graph.Admin)

	// bob's own listing with its bids
	require.Len(t, graph.Products, 1)
	require.Equal(t, "chair", graph.Products[0].Name)
	require.Len(t, graph.Products[0].Bids, 1)

	// bob's bid on alice's lamp, with the lamp's full bid list
	require.Len(t, graph.Bids, 1)
	require.Equal(t, float64(25), graph.Bids[0].Price)
	require.Equal(t, "lamp", graph.Bids[0].Product.Name)
	require.Len(t, graph.Bids[0].Product.Bids, 2)
}

func TestGetUserGraphHidesPassword(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("alice", false)

	rec, c := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(alice.ID))

	require.NoError(t, env.U.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	decodeJSON(t, rec, &raw)
	require.NotContains(t, raw, "passwordHash")
	require.NotContains(t, raw, "PasswordHash")
}

func TestGetUserMissing(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/users/404", nil)
	c.SetParamNames("id")
	c.SetParamValues("404")

	require.NoError(t, env.U.GetUser(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	require.Equal(t, "user not found", resp.Error)
}
