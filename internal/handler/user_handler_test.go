package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_SetUsername(t *testing.T) {
	t.Run("Success - returns 201 with the record", func(t *testing.T) {
		router := newTestRouter(t, false)

		w := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"test"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "caller-a", resp["caller_id"])
		assert.Equal(t, "test", resp["username"])
	})

	t.Run("Failed - missing caller header", func(t *testing.T) {
		router := newTestRouter(t, false)

		w := doRequest(router, http.MethodPost, "/api/v1/users/username", "", `{"username":"test"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - username taken returns 409", func(t *testing.T) {
		router := newTestRouter(t, false)
		first := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"test"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		w := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-b", `{"username":"test"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Username already taken")
	})

	t.Run("Failed - second username for same caller returns 409", func(t *testing.T) {
		router := newTestRouter(t, false)
		first := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"test"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		w := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"other"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already has a username")
	})

	t.Run("Failed - invalid username returns the validation reason", func(t *testing.T) {
		router := newTestRouter(t, false)

		w := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"bad_name"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "String contains invalid character")
	})
}

func TestUserHandler_FirstConnection(t *testing.T) {
	t.Run("Success - true then false after setting a username", func(t *testing.T) {
		router := newTestRouter(t, false)

		w := doRequest(router, http.MethodGet, "/api/v1/users/first-connection", "caller-a", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"first_connection":true`)

		created := doRequest(router, http.MethodPost, "/api/v1/users/username", "caller-a", `{"username":"test"}`)
		require.Equal(t, http.StatusCreated, created.Code)

		w = doRequest(router, http.MethodGet, "/api/v1/users/first-connection", "caller-a", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"first_connection":false`)
	})
}
