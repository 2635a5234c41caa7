package rebuild

import (
	"novelhub/dao/mysql"
	"novelhub/dao/redis"
	"novelhub/logger"

	"github.com/pkg/errors"
)

// RebuildCommentLikeSet 点赞集合缓存 miss 时从 db 回填该用户的点赞状态
// 返回该用户是否点过赞
func RebuildCommentLikeSet(commentID, userID int64) (bool, error) {
	exist, err := mysql.CheckCommentLikeMappingIfExist(nil, commentID, userID)
	if err != nil {
		return false, errors.Wrap(err, "rebuild:RebuildCommentLikeSet: CheckCommentLikeMappingIfExist")
	}
	if exist {
		if err := redis.AddCommentLikeUser(commentID, userID); err != nil {
			return false, errors.Wrap(err, "rebuild:RebuildCommentLikeSet: AddCommentLikeUser")
		}
		logger.Infof("rebuild:RebuildCommentLikeSet: Rebuild 1 data from mysql to redis")
	}
	return exist, nil
}

// RebuildCommentLikeCount 点赞数缓存 miss 时以 mapping 表的计数为准重建
// 返回参数：点赞数、是否重建、错误
func RebuildCommentLikeCount(commentID int64) (int64, bool, error) {
	count, err := redis.GetCommentLikeCount(commentID)
	if err == nil { // 不需要重建
		return count, false, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, false, errors.Wrap(err, "rebuild:RebuildCommentLikeCount: GetCommentLikeCount")
	}

	count, err = mysql.CountLikesByCommentID(nil, commentID)
	if err != nil {
		return 0, false, errors.Wrap(err, "rebuild:RebuildCommentLikeCount: CountLikesByCommentID")
	}
	if err := redis.SetCommentLikeCount(commentID, count); err != nil {
		return 0, false, errors.Wrap(err, "rebuild:RebuildCommentLikeCount: SetCommentLikeCount")
	}

	logger.Infof("rebuild:RebuildCommentLikeCount: Rebuild 1 data from mysql to redis")
	return count, true, nil
}
