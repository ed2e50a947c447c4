package ping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New()
	r.GET("/", h.HandleRoot)
	r.GET("/ping", h.HandlePing)
	return r
}

func TestHandleRoot(t *testing.T) {
	r := pingRouter()

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))
	assert.True(t, respBody.Success)
	assert.Equal(t, "Welcome to DocsOfBoxs API", respBody.Message)

	data, ok := respBody.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "1.0.0", data["version"])
}

func TestHandlePing(t *testing.T) {
	r := pingRouter()

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))

	data, ok := respBody.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "pong", data["message"])
}
