package localcache_test

import (
	"testing"
	"time"

	"novelhub/dao/localcache"
	"novelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrNovelReadAndTopK(t *testing.T) {
	testutil.InitEnv()
	testutil.ResetLocalCache()

	// 100 读 1 次，200 读 3 次，300 读 2 次
	first, err := localcache.IncrNovelRead(100, 1)
	require.NoError(t, err)
	assert.True(t, first)

	for i := 0; i < 3; i++ {
		_, err := localcache.IncrNovelRead(200, 1)
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := localcache.IncrNovelRead(300, 1)
		require.NoError(t, err)
	}

	novelIDs, err := localcache.GetTopKNovelIDsByReads(2)
	require.NoError(t, err)
	assert.Equal(t, []int64{200, 300}, novelIDs)

	// k 大于现有数量时全量返回
	novelIDs, err = localcache.GetTopKNovelIDsByReads(10)
	require.NoError(t, err)
	assert.Len(t, novelIDs, 3)
	assert.Equal(t, int64(200), novelIDs[0])
}

func TestRemoveExpiredNovelReads(t *testing.T) {
	testutil.InitEnv()
	testutil.ResetLocalCache()

	now := time.Now().Unix()

	_, err := localcache.IncrNovelRead(100, 1)
	require.NoError(t, err)
	require.NoError(t, localcache.SetNovelReadCreateTime(100, now-3600))

	_, err = localcache.IncrNovelRead(200, 1)
	require.NoError(t, err)
	require.NoError(t, localcache.SetNovelReadCreateTime(200, now))

	// 一小时窗口外的热度被清掉
	localcache.RemoveExpiredNovelReads(now - 1800)

	novelIDs, err := localcache.GetTopKNovelIDsByReads(10)
	require.NoError(t, err)
	assert.Equal(t, []int64{200}, novelIDs)
}
