package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWardsHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/wards?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestWardsHandlerListsAllWards(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/wards?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", model.Text)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)

	list, ok := data["list"].([]interface{})
	require.True(t, ok)

	assert.Equal(t, []int{1, 2, 3}, collectAllWardNosFromObjects(t, list, "wardNo"))

	first, ok := list[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Kempegowda Ward", first["name"])
	assert.Equal(t, 101.0, first["movementId"])
}
