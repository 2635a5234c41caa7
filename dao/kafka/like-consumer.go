package kafka

import (
	"fmt"

	"novelhub/dao/mysql"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func GetIncrCommentLikeCountUniqueKey(commentID int64) string {
	return fmt.Sprintf("incr_comment_like_%v", commentID)
}

func GetCreateCommentLikeMappingUniqueKey(commentID, userID int64) string {
	return fmt.Sprintf("create_like_mapping_%v_%v", commentID, userID)
}

func GetRemoveCommentLikeMappingUniqueKey(commentID, userID int64) string {
	return fmt.Sprintf("remove_like_mapping_%v_%v", commentID, userID)
}

func incrCommentLikeCount(tx *gorm.DB, commentID, offset int64) (res Result) {
	res.UniqueKey = GetIncrCommentLikeCountUniqueKey(commentID)

	if err := mysql.IncrCommentCountField(tx, "like_count", commentID, offset); err != nil {
		res.Err = errors.Wrap(err, "kafka:incrCommentLikeCount")
	}

	return
}

func createCommentLikeMapping(tx *gorm.DB, commentID, userID int64) (res Result) {
	res.UniqueKey = GetCreateCommentLikeMappingUniqueKey(commentID, userID)

	if err := mysql.CreateCommentLikeMapping(tx, commentID, userID); err != nil {
		res.Err = errors.Wrap(err, "kafka:createCommentLikeMapping")
	}

	return
}

func removeCommentLikeMapping(tx *gorm.DB, commentID, userID int64) (res Result) {
	res.UniqueKey = GetRemoveCommentLikeMappingUniqueKey(commentID, userID)

	if err := mysql.DeleteCommentLikeMapping(tx, commentID, userID); err != nil {
		res.Err = errors.Wrap(err, "kafka:removeCommentLikeMapping")
	}

	return
}
