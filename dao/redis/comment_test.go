package redis_test

import (
	"testing"

	"novelhub/dao/redis"
	"novelhub/internal/testutil"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLikeSet(t *testing.T) {
	testutil.SetupTestRedis(t)

	exist, err := redis.CheckCommentLikeIfExistUser(1, 2)
	require.NoError(t, err)
	assert.False(t, exist)

	require.NoError(t, redis.AddCommentLikeUser(1, 2))
	exist, err = redis.CheckCommentLikeIfExistUser(1, 2)
	require.NoError(t, err)
	assert.True(t, exist)

	require.NoError(t, redis.RemCommentLikeUser(1, 2))
	exist, err = redis.CheckCommentLikeIfExistUser(1, 2)
	require.NoError(t, err)
	assert.False(t, exist)
}

func TestCommentLikeCount(t *testing.T) {
	testutil.SetupTestRedis(t)

	// miss 返回 redis.Nil
	_, err := redis.GetCommentLikeCount(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, redis.Nil))

	require.NoError(t, redis.SetCommentLikeCount(1, 5))
	require.NoError(t, redis.IncrCommentLikeCount(1, 2))

	count, err := redis.GetCommentLikeCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestGetCommentLikeCounts(t *testing.T) {
	testutil.SetupTestRedis(t)

	require.NoError(t, redis.SetCommentLikeCount(1, 3))
	require.NoError(t, redis.SetCommentLikeCount(3, 9))

	// miss 的 comment 不出现在结果里
	counts, err := redis.GetCommentLikeCounts([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 3, 3: 9}, counts)
}

func TestDelCommentLikeKeysByCommentIDs(t *testing.T) {
	testutil.SetupTestRedis(t)

	require.NoError(t, redis.AddCommentLikeUser(1, 2))
	require.NoError(t, redis.SetCommentLikeCount(1, 1))

	require.NoError(t, redis.DelCommentLikeKeysByCommentIDs([]int64{1}))

	exist, err := redis.CheckCommentLikeIfExistUser(1, 2)
	require.NoError(t, err)
	assert.False(t, exist)
	_, err = redis.GetCommentLikeCount(1)
	assert.True(t, errors.Is(err, redis.Nil))
}
