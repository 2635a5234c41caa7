package mysql_test

import (
	"testing"
	"time"

	"novelhub/dao/mysql"
	"novelhub/internal/testutil"
	"novelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleInteractionFlag(t *testing.T) {
	testutil.SetupTestDB(t)

	// 记录不存在，影响 0 行
	rows, err := mysql.ToggleInteractionFlag(nil, "has_following", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100}))

	rows, err = mysql.ToggleInteractionFlag(nil, "has_following", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	interaction, err := mysql.SelectInteraction(nil, 1, 100)
	require.NoError(t, err)
	assert.True(t, interaction.HasFollowing)

	_, err = mysql.ToggleInteractionFlag(nil, "has_following", 1, 100)
	require.NoError(t, err)
	interaction, err = mysql.SelectInteraction(nil, 1, 100)
	require.NoError(t, err)
	assert.False(t, interaction.HasFollowing)
}

func TestToggleInteractionFlagUnexpectedField(t *testing.T) {
	testutil.SetupTestDB(t)

	// 字段名来自白名单，其它一律拒绝
	_, err := mysql.ToggleInteractionFlag(nil, "total_chapter_reads", 1, 100)
	assert.Error(t, err)
}

func TestCreateInteractionDuplicate(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100}))

	// (user_id, novel_id) 唯一
	err := mysql.CreateInteraction(nil, &models.Interaction{ID: 2, UserID: 1, NovelID: 100})
	require.Error(t, err)
	assert.True(t, mysql.IsDuplicateKeyError(err))

	// 不同小说可以再建
	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 3, UserID: 1, NovelID: 101}))
}

func TestUpdateReadingProgress(t *testing.T) {
	testutil.SetupTestDB(t)

	rows, err := mysql.UpdateReadingProgress(nil, 1, 100, 5, 1005, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100}))

	rows, err = mysql.UpdateReadingProgress(nil, 1, 100, 5, 1005, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	interaction, err := mysql.SelectInteraction(nil, 1, 100)
	require.NoError(t, err)
	require.NotNil(t, interaction.CurrentChapterNumber)
	assert.Equal(t, int64(5), *interaction.CurrentChapterNumber)
	assert.Equal(t, int64(1), interaction.TotalChapterReads)
	assert.NotNil(t, interaction.LastReadAt)

	_, err = mysql.UpdateReadingProgress(nil, 1, 100, 6, 1006, time.Now())
	require.NoError(t, err)
	interaction, err = mysql.SelectInteraction(nil, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), interaction.TotalChapterReads)
}

func TestCountFollowersByNovelID(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100, HasFollowing: true}))
	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 2, UserID: 2, NovelID: 100, HasFollowing: true}))
	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 3, UserID: 3, NovelID: 100, InWishlist: true})) // 没有关注

	count, err := mysql.CountFollowersByNovelID(nil, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSelectInteractionsByUserID(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100, HasFollowing: true}))
	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 2, UserID: 1, NovelID: 101, InWishlist: true}))
	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 3, UserID: 2, NovelID: 100, HasFollowing: true}))

	// 不过滤
	interactions, total, err := mysql.SelectInteractionsByUserID(nil, 1, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, interactions, 2)

	// 只要关注的
	interactions, total, err = mysql.SelectInteractionsByUserID(nil, 1, "has_following", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, interactions, 1)
	assert.Equal(t, int64(100), interactions[0].NovelID)
}

func TestDeleteInteraction(t *testing.T) {
	testutil.SetupTestDB(t)

	require.NoError(t, mysql.CreateInteraction(nil, &models.Interaction{ID: 1, UserID: 1, NovelID: 100}))
	require.NoError(t, mysql.DeleteInteraction(nil, 1, 100))

	_, err := mysql.SelectInteraction(nil, 1, 100)
	assert.Error(t, err)

	// 不存在也不报错
	require.NoError(t, mysql.DeleteInteraction(nil, 1, 100))
}
