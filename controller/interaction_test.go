package controller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"novelhub/controller"
	common "novelhub/controller/Common"
	"novelhub/internal/testutil"
	"novelhub/internal/utils"
	"novelhub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInteractionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/interactions/users/:user_id")
	grp.Use(middleware.Auth())
	grp.GET("/novels/:novel_id", controller.InteractionDetailHandler)
	grp.POST("/novels/:novel_id/follow", controller.InteractionFollowHandler)
	grp.POST("/novels/:novel_id/read", controller.InteractionReadHandler)
	grp.GET("/following", controller.InteractionFollowingListHandler)
	r.GET("/interactions/novels/:novel_id/followers/count", controller.NovelFollowCountHandler)
	return r
}

func doJSONRequest(t *testing.T, r *gin.Engine, method, target string, userID int64) *common.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	if userID != 0 {
		token, err := utils.GenToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := &common.Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp))
	return resp
}

func TestInteractionFollowEndpoint(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	resp := doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/follow", 1)
	require.True(t, resp.Success)
	assert.Equal(t, common.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["has_following"])
	assert.Equal(t, "100", data["novel_id"]) // snowflake id 序列化成字符串

	// 再翻转一次
	resp = doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/follow", 1)
	require.True(t, resp.Success)
	data = resp.Data.(map[string]any)
	assert.Equal(t, false, data["has_following"])
}

func TestInteractionPathUserMismatch(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	// 用 2 号用户的 token 操作 1 号用户的记录
	resp := doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/follow", 2)
	assert.False(t, resp.Success)
	assert.Equal(t, common.CodeForbidden, resp.Code)
}

func TestInteractionDetailAbsent(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	resp := doJSONRequest(t, r, http.MethodGet, "/interactions/users/1/novels/100", 1)
	require.True(t, resp.Success)
	assert.Nil(t, resp.Data) // 没有互动过，data 为空
}

func TestInteractionReadEndpoint(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	resp := doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/read?chapterNumber=5&chapterId=1005", 1)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(5), data["current_chapter_number"])
	assert.Equal(t, float64(1), data["total_chapter_reads"])

	// 缺参数
	resp = doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/read", 1)
	assert.False(t, resp.Success)
	assert.Equal(t, common.CodeInvalidParam, resp.Code)
}

func TestInteractionFollowingListEndpoint(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	for novelID := 100; novelID < 104; novelID++ {
		resp := doJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/interactions/users/1/novels/%d/follow", novelID), 1)
		require.True(t, resp.Success)
	}

	resp := doJSONRequest(t, r, http.MethodGet, "/interactions/users/1/following?page=0&size=3", 1)
	require.True(t, resp.Success)

	page, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), page["totalElements"])
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, true, page["first"])
	assert.Equal(t, false, page["last"])
	assert.Len(t, page["content"], 3)
}

func TestFollowCountEndpoint(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)
	r := setupInteractionRouter()

	resp := doJSONRequest(t, r, http.MethodPost, "/interactions/users/1/novels/100/follow", 1)
	require.True(t, resp.Success)
	resp = doJSONRequest(t, r, http.MethodPost, "/interactions/users/2/novels/100/follow", 2)
	require.True(t, resp.Success)

	resp = doJSONRequest(t, r, http.MethodGet, "/interactions/novels/100/followers/count", 0)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["follow_count"])
}
