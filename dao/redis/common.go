package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keys
// 规范：
// Key + KeyName + Type + (PF)前缀
const (
	// comment
	KeyCommentLikeSetPF         = "novelhub:comment:likeset:" // parma: comment_id, member: user_id
	KeyCommentLikeCountStringPF = "novelhub:comment:like:"    // parma: comment_id, val: like_count

	// interaction
	KeyFollowCountStringPF = "novelhub:interaction:followcount:" // parma: novel_id, val: follower count
)

var Nil = redis.Nil

func Exists(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Exists(ctx, key)
	return cmd.Val() == 1, errors.Wrap(cmd.Err(), "redis:Exists: Exists")
}

func ExistsKeys(keys []string) ([]bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	pipe := rdb.Pipeline()
	for i := 0; i < len(keys); i++ {
		pipe.Exists(ctx, keys[i])
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "redis:ExistsKeys: Exists")
	}

	exists := make([]bool, len(cmds))
	for i := 0; i < len(cmds); i++ {
		exists[i] = cmds[i].(*redis.IntCmd).Val() == 1
	}
	return exists, nil
}

func GetKeys(pattern string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	keys := make([]string, 0)
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, errors.Wrap(iter.Err(), "redis:GetKeys: Scan")
}

func DelKeys(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Del(ctx, keys...)
	return errors.Wrap(cmd.Err(), "redis:DelKeys: Del")
}

// GetKeysIdleTime 获取 key 的空闲时间，用于逻辑过期清理
func GetKeysIdleTime(keys []string) ([]time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	pipe := rdb.Pipeline()
	for i := 0; i < len(keys); i++ {
		pipe.ObjectIdleTime(ctx, keys[i])
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "redis:GetKeysIdleTime: ObjectIdleTime")
	}

	idleTimes := make([]time.Duration, len(cmds))
	for i := 0; i < len(cmds); i++ {
		idleTimes[i] = cmds[i].(*redis.DurationCmd).Val()
	}
	return idleTimes, nil
}
