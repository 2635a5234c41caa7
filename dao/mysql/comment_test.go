package mysql_test

import (
	"testing"

	"novelhub/dao/mysql"
	"novelhub/internal/testutil"
	"novelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrCommentCountField(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateComment(nil, &models.Comment{ID: 1, UserID: 1, TargetType: models.TargetTypeNovel, Content: "c"}))

	require.NoError(t, mysql.IncrCommentCountField(nil, "reply_count", 1, 1))
	require.NoError(t, mysql.IncrCommentCountField(nil, "reply_count", 1, 1))
	require.NoError(t, mysql.IncrCommentCountField(nil, "like_count", 1, 3))

	comment, err := mysql.SelectCommentByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.ReplyCount)
	assert.Equal(t, int64(3), comment.LikeCount)

	require.NoError(t, mysql.IncrCommentCountField(nil, "like_count", 1, -1))
	comment, err = mysql.SelectCommentByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.LikeCount)

	// offset 为 0 直接跳过
	require.NoError(t, mysql.IncrCommentCountField(nil, "reply_count", 1, 0))

	// 白名单外的字段
	assert.Error(t, mysql.IncrCommentCountField(nil, "content", 1, 1))
}

func TestCreateCommentLikeMappingIdempotent(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateCommentLikeMapping(nil, 1, 2))
	// 重复点赞的写入被吞掉
	require.NoError(t, mysql.CreateCommentLikeMapping(nil, 1, 2))

	count, err := mysql.CountLikesByCommentID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCommentLikeMappingsByCommentIDs(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateCommentLikeMapping(nil, 1, 2))
	require.NoError(t, mysql.CreateCommentLikeMapping(nil, 1, 3))
	require.NoError(t, mysql.CreateCommentLikeMapping(nil, 2, 2))

	require.NoError(t, mysql.DeleteCommentLikeMappingsByCommentIDs(nil, []int64{1}))

	count, err := mysql.CountLikesByCommentID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = mysql.CountLikesByCommentID(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSelectReplyIDsByParentID(t *testing.T) {
	testutil.SetupTestDB(t)

	parentID := int64(1)
	require.NoError(t, mysql.CreateComment(nil, &models.Comment{ID: parentID, UserID: 1, TargetType: models.TargetTypeNovel, Content: "root"}))
	for i := int64(2); i <= 4; i++ {
		require.NoError(t, mysql.CreateComment(nil, &models.Comment{
			ID: i, UserID: i, TargetType: models.TargetTypeNovel,
			ParentID: &parentID, Level: models.LevelReply, Content: "reply",
		}))
	}

	replyIDs, err := mysql.SelectReplyIDsByParentID(nil, parentID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3, 4}, replyIDs)
}
