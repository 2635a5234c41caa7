package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	common "novelhub/controller/Common"
	"novelhub/internal/testutil"
	"novelhub/internal/utils"
	"novelhub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.Auth(), func(ctx *gin.Context) {
		common.ResponseSuccess(ctx, gin.H{"user_id": ctx.GetInt64("user_id")})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) *common.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := &common.Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp))
	return resp
}

func TestAuthMissingHeader(t *testing.T) {
	testutil.InitEnv()
	r := setupAuthRouter()

	resp := doRequest(t, r, "")
	assert.False(t, resp.Success)
	assert.Equal(t, common.CodeNeedLogin, resp.Code)
}

func TestAuthBadProtocol(t *testing.T) {
	testutil.InitEnv()
	r := setupAuthRouter()

	resp := doRequest(t, r, "Basic abc")
	assert.False(t, resp.Success)
	assert.Equal(t, common.CodeInvalidToken, resp.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	testutil.InitEnv()
	r := setupAuthRouter()

	resp := doRequest(t, r, "Bearer not-a-token")
	assert.False(t, resp.Success)
}

func TestAuthValidToken(t *testing.T) {
	testutil.InitEnv()
	r := setupAuthRouter()

	token, err := utils.GenToken(42)
	require.NoError(t, err)

	resp := doRequest(t, r, "Bearer "+token)
	assert.True(t, resp.Success)
	assert.Equal(t, common.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["user_id"])
}
