package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

/* novelhub:comment:likeset: */

func CheckCommentLikeIfExistUser(commentID, userID int64) (bool, error) {
	key := getCommentLikeSetKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.SIsMember(ctx, key, userID)
	return cmd.Val(), errors.Wrap(cmd.Err(), "redis:CheckCommentLikeIfExistUser: SIsMember")
}

func AddCommentLikeUser(commentID, userID int64) error {
	key := getCommentLikeSetKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.SAdd(ctx, key, userID)
	return errors.Wrap(cmd.Err(), "redis:AddCommentLikeUser: SAdd")
}

func AddCommentLikeUsers(commentID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	key := getCommentLikeSetKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	members := make([]any, 0, len(userIDs))
	for _, userID := range userIDs {
		members = append(members, userID)
	}
	cmd := rdb.SAdd(ctx, key, members...)
	return errors.Wrap(cmd.Err(), "redis:AddCommentLikeUsers: SAdd")
}

func RemCommentLikeUser(commentID, userID int64) error {
	key := getCommentLikeSetKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.SRem(ctx, key, userID)
	return errors.Wrap(cmd.Err(), "redis:RemCommentLikeUser: SRem")
}

/* novelhub:comment:like: */

func IncrCommentLikeCount(commentID, offset int64) error {
	key := getCommentLikeCountKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.IncrBy(ctx, key, offset)
	return errors.Wrap(cmd.Err(), "redis:IncrCommentLikeCount: IncrBy")
}

func SetCommentLikeCount(commentID, count int64) error {
	key := getCommentLikeCountKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Set(ctx, key, count, 0)
	return errors.Wrap(cmd.Err(), "redis:SetCommentLikeCount: Set")
}

// GetCommentLikeCount 缓存未命中返回 redis.Nil
func GetCommentLikeCount(commentID int64) (int64, error) {
	key := getCommentLikeCountKey(commentID)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	cmd := rdb.Get(ctx, key)
	if cmd.Err() != nil {
		return 0, errors.Wrap(cmd.Err(), "redis:GetCommentLikeCount: Get")
	}
	count, _ := strconv.ParseInt(cmd.Val(), 10, 64)
	return count, nil
}

// GetCommentLikeCounts 批量获取点赞数缓存，miss 的 comment 不出现在结果里
func GetCommentLikeCounts(commentIDs []int64) (map[int64]int64, error) {
	if len(commentIDs) == 0 {
		return map[int64]int64{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	pipe := rdb.Pipeline()
	for i := 0; i < len(commentIDs); i++ {
		pipe.Get(ctx, getCommentLikeCountKey(commentIDs[i]))
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Wrap(err, "redis:GetCommentLikeCounts: Get")
	}

	counts := make(map[int64]int64, len(cmds))
	for i := 0; i < len(cmds); i++ {
		cmd := cmds[i].(*redis.StringCmd)
		if errors.Is(cmd.Err(), redis.Nil) {
			continue
		}
		count, _ := strconv.ParseInt(cmd.Val(), 10, 64)
		counts[commentIDs[i]] = count
	}
	return counts, nil
}

// DelCommentLikeKeysByCommentIDs 删除点赞集合与点赞数缓存
func DelCommentLikeKeysByCommentIDs(commentIDs []int64) error {
	keys := make([]string, 0, len(commentIDs)*2)
	for _, commentID := range commentIDs {
		keys = append(keys, getCommentLikeSetKey(commentID), getCommentLikeCountKey(commentID))
	}
	return DelKeys(keys)
}

func getCommentLikeSetKey(commentID int64) string {
	return fmt.Sprintf("%s%d", KeyCommentLikeSetPF, commentID)
}

func getCommentLikeCountKey(commentID int64) string {
	return fmt.Sprintf("%s%d", KeyCommentLikeCountStringPF, commentID)
}
