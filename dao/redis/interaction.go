package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

/* novelhub:interaction:followcount: */

// GetFollowCount 缓存未命中返回 redis.Nil
func GetFollowCount(novelID int64) (int64, error) {
	key := getFollowCountKey(novelID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Get(ctx, key)
	if cmd.Err() != nil {
		return 0, errors.Wrap(cmd.Err(), "redis:GetFollowCount: Get")
	}
	count, _ := strconv.ParseInt(cmd.Val(), 10, 64)
	return count, nil
}

// SetFollowCount 带 TTL，过期后回源 db
func SetFollowCount(novelID, count int64) error {
	key := getFollowCountKey(novelID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Set(ctx, key, count, FollowCountExpireTime)
	return errors.Wrap(cmd.Err(), "redis:SetFollowCount: Set")
}

// DelFollowCount 关注状态变化后让缓存失效
func DelFollowCount(novelID int64) error {
	return DelKeys([]string{getFollowCountKey(novelID)})
}

func getFollowCountKey(novelID int64) string {
	return fmt.Sprintf("%s%d", KeyFollowCountStringPF, novelID)
}
