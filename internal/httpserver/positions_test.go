package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staffhub/internal/models"
)

func TestPositionsEndpoints_CRUD(t *testing.T) {
	env := newServerEnv(t)
	login := registerAndLogin(t, env, "alice")

	var alice models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&alice).Error)

	rec := env.do(t, http.MethodPost, "/positions", login.AccessToken, map[string]any{
		"position_code": "ENG1", "position_name": "Engineer", "id": alice.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ENG1", created["position_code"])
	posID := uint(created["position_id"].(float64))
	require.NotZero(t, posID)

	rec = env.do(t, http.MethodGet, "/positions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.PositionRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].UserName)

	newName := "Senior Engineer"
	rec = env.do(t, http.MethodPut, "/positions/1", login.AccessToken, map[string]any{
		"position_name": newName,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, newName, updated.PositionName)
	assert.Equal(t, "ENG1", updated.PositionCode)

	rec = env.do(t, http.MethodDelete, "/positions/1", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/positions/1", login.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPositionsEndpoints_CreateGuards(t *testing.T) {
	env := newServerEnv(t)
	login := registerAndLogin(t, env, "alice")

	rec := env.do(t, http.MethodPost, "/positions", login.AccessToken, map[string]any{
		"position_code": "X", "position_name": "Y", "id": 999999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/positions", login.AccessToken, map[string]any{
		"position_name": "Y", "id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPositionsEndpoints_MutationsRequireAuth(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/positions", "", map[string]any{
		"position_code": "ENG1", "position_name": "Engineer", "id": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/positions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPositionsEndpoints_DeleteAll(t *testing.T) {
	env := newServerEnv(t)
	login := registerAndLogin(t, env, "alice")

	// Empty table is not an error.
	rec := env.do(t, http.MethodDelete, "/positions", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var alice models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&alice).Error)

	for _, code := range []string{"ENG1", "ENG2"} {
		rec = env.do(t, http.MethodPost, "/positions", login.AccessToken, map[string]any{
			"position_code": code, "position_name": "Engineer", "id": alice.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/positions", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/positions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.PositionRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Empty(t, rows)
}

func TestPositionsEndpoints_BadID(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodGet, "/positions/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
