package logic

import (
	"testing"

	"novelhub/dao/mysql"
	novelhub "novelhub/errors"
	"novelhub/internal/testutil"
	"novelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestComment(t *testing.T, userID, novelID int64, content string) *models.CommentDTO {
	t.Helper()
	dto, err := CreateComment(userID, &models.ParamCommentCreate{
		TargetType: models.TargetTypeNovel,
		NovelID:    novelID,
		Content:    content,
	})
	require.NoError(t, err)
	return dto
}

func TestCreateComment(t *testing.T) {
	testutil.SetupTestDB(t)

	dto := createTestComment(t, 1, 100, "写得太好了")
	assert.NotZero(t, dto.CommentID)
	assert.Equal(t, int64(1), dto.UserID)
	require.NotNil(t, dto.NovelID)
	assert.Equal(t, int64(100), *dto.NovelID)
	assert.Nil(t, dto.ParentID)
	assert.Equal(t, models.LevelRoot, dto.Level)
	assert.Equal(t, int64(0), dto.LikeCount)
	assert.Equal(t, int64(0), dto.ReplyCount)
}

func TestCreateCommentBlankContent(t *testing.T) {
	testutil.SetupTestDB(t)

	_, err := CreateComment(1, &models.ParamCommentCreate{
		TargetType: models.TargetTypeNovel,
		NovelID:    100,
		Content:    "   \t\n",
	})
	assert.ErrorIs(t, err, novelhub.ErrBlankContent)
}

func TestCreateReply(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	root := createTestComment(t, 1, 100, "根评论")

	reply, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "回复"})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.CommentID, *reply.ParentID)
	assert.Equal(t, models.LevelReply, reply.Level)
	require.NotNil(t, reply.NovelID)
	assert.Equal(t, *root.NovelID, *reply.NovelID)

	// 父评论的 reply_count 同事务 +1
	parent, err := GetCommentByID(root.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), parent.ReplyCount)

	_, err = CreateReply(3, root.CommentID, &models.ParamReplyCreate{Content: "又一条"})
	require.NoError(t, err)
	parent, err = GetCommentByID(root.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), parent.ReplyCount)
}

func TestCreateReplyInvalidParent(t *testing.T) {
	testutil.SetupTestDB(t)

	root := createTestComment(t, 1, 100, "根评论")
	reply, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "回复"})
	require.NoError(t, err)

	// 不存在的父评论
	_, err = CreateReply(3, 99999, &models.ParamReplyCreate{Content: "x"})
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)

	// 对回复再回复，超过两层
	_, err = CreateReply(3, reply.CommentID, &models.ParamReplyCreate{Content: "x"})
	assert.ErrorIs(t, err, novelhub.ErrInvalidParent)
}

func TestCreateReplyWithReplyTo(t *testing.T) {
	testutil.SetupTestDB(t)

	root := createTestComment(t, 1, 100, "根评论")
	first, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "一楼"})
	require.NoError(t, err)

	// @ 同一楼中楼里的另一条回复
	second, err := CreateReply(3, root.CommentID, &models.ParamReplyCreate{
		Content:         "回一楼",
		ReplyToID:       first.CommentID,
		ReplyToUserName: "reader2",
	})
	require.NoError(t, err)
	require.NotNil(t, second.ReplyToID)
	assert.Equal(t, first.CommentID, *second.ReplyToID)
	assert.Equal(t, "reader2", second.ReplyToUserName)

	// @ 不在该根评论下的对象
	otherRoot := createTestComment(t, 1, 100, "另一条根评论")
	_, err = CreateReply(3, root.CommentID, &models.ParamReplyCreate{
		Content:   "x",
		ReplyToID: otherRoot.CommentID,
	})
	assert.ErrorIs(t, err, novelhub.ErrInvalidReplyTo)
}

func TestGetCommentByIDNotFound(t *testing.T) {
	testutil.SetupTestDB(t)

	_, err := GetCommentByID(99999)
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)
}

func TestGetCommentsByNovelID(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	var lastID int64
	for i := 0; i < 5; i++ {
		dto := createTestComment(t, 1, 100, "评论")
		lastID = dto.CommentID
	}
	// 其它小说的评论不应出现
	createTestComment(t, 1, 200, "别的小说")
	// 回复不应出现在根评论列表
	_, err := CreateReply(2, lastID, &models.ParamReplyCreate{Content: "回复"})
	require.NoError(t, err)

	page, err := GetCommentsByNovelID(100, &models.ParamCommentList{PageNum: 0, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Content, 3)

	// 从新到旧
	assert.Equal(t, lastID, page.Content[0].CommentID)

	page, err = GetCommentsByNovelID(100, &models.ParamCommentList{PageNum: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Last)
}

func TestGetRepliesByCommentID(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	root := createTestComment(t, 1, 100, "根评论")

	replyIDs := make([]int64, 0, 4)
	for i := 0; i < 4; i++ {
		reply, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "回复"})
		require.NoError(t, err)
		replyIDs = append(replyIDs, reply.CommentID)
	}

	page, err := GetRepliesByCommentID(root.CommentID, &models.ParamCommentList{PageNum: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalElements)
	require.Len(t, page.Content, 4)

	// 从旧到新
	assert.Equal(t, replyIDs[0], page.Content[0].CommentID)
	assert.Equal(t, replyIDs[3], page.Content[3].CommentID)

	// 对回复查回复列表
	_, err = GetRepliesByCommentID(replyIDs[0], &models.ParamCommentList{PageNum: 0, PageSize: 10})
	assert.ErrorIs(t, err, novelhub.ErrInvalidParent)
}

func TestUpdateComment(t *testing.T) {
	testutil.SetupTestDB(t)

	dto := createTestComment(t, 1, 100, "初稿")

	updated, err := UpdateComment(1, dto.CommentID, &models.ParamCommentUpdate{Content: "修改后"})
	require.NoError(t, err)
	assert.Equal(t, "修改后", updated.Content)

	// 别人不能编辑
	_, err = UpdateComment(2, dto.CommentID, &models.ParamCommentUpdate{Content: "篡改"})
	assert.ErrorIs(t, err, novelhub.ErrForbidden)

	// 内容不能改成空白
	_, err = UpdateComment(1, dto.CommentID, &models.ParamCommentUpdate{Content: "  "})
	assert.ErrorIs(t, err, novelhub.ErrBlankContent)
}

func TestDeleteReplyDecrReplyCount(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	root := createTestComment(t, 1, 100, "根评论")
	reply, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "回复"})
	require.NoError(t, err)

	// 别人不能删除
	err = DeleteComment(3, reply.CommentID)
	assert.ErrorIs(t, err, novelhub.ErrForbidden)

	require.NoError(t, DeleteComment(2, reply.CommentID))

	parent, err := GetCommentByID(root.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), parent.ReplyCount)

	_, err = GetCommentByID(reply.CommentID)
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)
}

func TestDeleteRootCascades(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	root := createTestComment(t, 1, 100, "根评论")
	reply, err := CreateReply(2, root.CommentID, &models.ParamReplyCreate{Content: "回复"})
	require.NoError(t, err)

	// 点赞制造 mapping，删除后应一并清掉
	_, err = LikeComment(3, reply.CommentID)
	require.NoError(t, err)

	require.NoError(t, DeleteComment(1, root.CommentID))

	_, err = GetCommentByID(root.CommentID)
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)
	_, err = GetCommentByID(reply.CommentID)
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)

	var count int64
	mysql.GetDB().Model(&models.CommentUserLikeMapping{}).
		Where("comment_id = ?", reply.CommentID).
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLikeComment(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	dto := createTestComment(t, 1, 100, "评论")

	// 点赞
	liked, err := LikeComment(2, dto.CommentID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := GetCommentByID(dto.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)

	exist, err := mysql.CheckCommentLikeMappingIfExist(nil, dto.CommentID, 2)
	require.NoError(t, err)
	assert.True(t, exist)

	// 重复点赞是幂等的取消
	liked, err = LikeComment(2, dto.CommentID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = GetCommentByID(dto.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeCount)

	exist, err = mysql.CheckCommentLikeMappingIfExist(nil, dto.CommentID, 2)
	require.NoError(t, err)
	assert.False(t, exist)
}

func TestLikeCommentRebuildAfterCacheLoss(t *testing.T) {
	testutil.SetupTestDB(t)
	mr := testutil.SetupTestRedis(t)

	dto := createTestComment(t, 1, 100, "评论")

	liked, err := LikeComment(2, dto.CommentID)
	require.NoError(t, err)
	assert.True(t, liked)

	// 缓存全丢，点赞状态从 db 重建，再次调用仍是取消而不是重复点赞
	mr.FlushAll()

	liked, err = LikeComment(2, dto.CommentID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := mysql.CountLikesByCommentID(nil, dto.CommentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLikeCommentNotFound(t *testing.T) {
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	_, err := LikeComment(1, 99999)
	assert.ErrorIs(t, err, novelhub.ErrCommentNotFound)
}

func TestCheckCommentLikeIfLiked(t *testing.T) {
	testutil.SetupTestDB(t)
	mr := testutil.SetupTestRedis(t)

	dto := createTestComment(t, 1, 100, "评论")

	liked, err := CheckCommentLikeIfLiked(2, dto.CommentID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = LikeComment(2, dto.CommentID)
	require.NoError(t, err)

	liked, err = CheckCommentLikeIfLiked(2, dto.CommentID)
	require.NoError(t, err)
	assert.True(t, liked)

	// 缓存丢失后回源重建
	mr.FlushAll()
	liked, err = CheckCommentLikeIfLiked(2, dto.CommentID)
	require.NoError(t, err)
	assert.True(t, liked)
}
