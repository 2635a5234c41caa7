package kafka

import (
	"strconv"

	"github.com/pkg/errors"
)

func IncrCommentLikeCount(commentID, offset int64) error {
	err := writeMessage(likeWriter, TopicLike, strconv.FormatInt(commentID, 10), TypeLikeIncr, LikeIncr{
		CommentID: commentID,
		Offset:    offset,
	})

	return errors.Wrap(err, "kafka-producer:IncrCommentLikeCount: writeMessage")
}

func CreateCommentLikeMapping(commentID, userID int64) error {
	err := writeMessage(likeWriter, TopicLike, strconv.FormatInt(commentID, 10), TypeLikeMappingCreate, LikeMappingCreate{
		CommentID: commentID,
		UserID:    userID,
	})

	return errors.Wrap(err, "kafka-producer:CreateCommentLikeMapping: writeMessage")
}

func RemoveCommentLikeMapping(commentID, userID int64) error {
	err := writeMessage(likeWriter, TopicLike, strconv.FormatInt(commentID, 10), TypeLikeMappingRemove, LikeMappingRemove{
		CommentID: commentID,
		UserID:    userID,
	})

	return errors.Wrap(err, "kafka-producer:RemoveCommentLikeMapping: writeMessage")
}
