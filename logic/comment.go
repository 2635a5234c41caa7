package logic

import (
	"novelhub/dao/kafka"
	"novelhub/dao/mysql"
	"novelhub/dao/rebuild"
	"novelhub/dao/redis"
	novelhub "novelhub/errors"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateComment 创建根评论
func CreateComment(userID int64, param *models.ParamCommentCreate) (*models.CommentDTO, error) {
	if utils.IsBlank(param.Content) {
		return nil, errors.Wrap(novelhub.ErrBlankContent, "logic:CreateComment: check content")
	}

	comment := &models.Comment{
		ID:         utils.GenSnowflakeID(),
		UserID:     userID,
		TargetType: param.TargetType,
		NovelID:    &param.NovelID,
		Level:      models.LevelRoot,
		Content:    param.Content,
	}

	if err := mysql.CreateComment(nil, comment); err != nil {
		return nil, errors.Wrap(err, "logic:CreateComment: CreateComment")
	}
	return comment.ToDTO(), nil
}

// CreateReply 在根评论下创建回复，楼中楼只有两层
// 回复与父评论 reply_count 的递增在同一个事务中完成
func CreateReply(userID, parentID int64, param *models.ParamReplyCreate) (*models.CommentDTO, error) {
	if utils.IsBlank(param.Content) {
		return nil, errors.Wrap(novelhub.ErrBlankContent, "logic:CreateReply: check content")
	}

	parent, err := mysql.SelectCommentByID(nil, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(novelhub.ErrCommentNotFound, "logic:CreateReply: SelectCommentByID")
		}
		return nil, errors.Wrap(err, "logic:CreateReply: SelectCommentByID")
	}
	if !parent.IsRoot() { // 不允许对回复再回复
		return nil, errors.Wrap(novelhub.ErrInvalidParent, "logic:CreateReply: check parent level")
	}

	reply := &models.Comment{
		ID:         utils.GenSnowflakeID(),
		UserID:     userID,
		TargetType: parent.TargetType,
		NovelID:    parent.NovelID,
		ParentID:   &parentID,
		Level:      models.LevelReply,
		Content:    param.Content,
	}

	// reply_to 用于楼中楼里 @ 另一条回复，必须位于同一个根评论下
	if param.ReplyToID != 0 && param.ReplyToID != parentID {
		replyTo, err := mysql.SelectCommentByID(nil, param.ReplyToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.Wrap(novelhub.ErrInvalidReplyTo, "logic:CreateReply: SelectCommentByID(replyTo)")
			}
			return nil, errors.Wrap(err, "logic:CreateReply: SelectCommentByID(replyTo)")
		}
		if replyTo.ParentID == nil || *replyTo.ParentID != parentID {
			return nil, errors.Wrap(novelhub.ErrInvalidReplyTo, "logic:CreateReply: check replyTo thread")
		}
		reply.ReplyToID = &param.ReplyToID
		reply.ReplyToUserName = param.ReplyToUserName
	}

	tx := mysql.GetDB().Begin()
	if err := mysql.CreateComment(tx, reply); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "logic:CreateReply: CreateComment")
	}
	if err := mysql.IncrCommentCountField(tx, "reply_count", parentID, 1); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "logic:CreateReply: IncrCommentCountField")
	}
	tx.Commit()

	return reply.ToDTO(), nil
}

// GetCommentByID 点赞数以缓存为准，缓存不可用时退回 db 里的冗余计数
func GetCommentByID(commentID int64) (*models.CommentDTO, error) {
	comment, err := mysql.SelectCommentByID(nil, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(novelhub.ErrCommentNotFound, "logic:GetCommentByID: SelectCommentByID")
		}
		return nil, errors.Wrap(err, "logic:GetCommentByID: SelectCommentByID")
	}

	dto := comment.ToDTO()
	count, _, err := rebuild.RebuildCommentLikeCount(commentID)
	if err != nil {
		logger.Warnf("logic:GetCommentByID: RebuildCommentLikeCount failed, reason: %v", err.Error())
	} else {
		dto.LikeCount = count
	}
	return dto, nil
}

// GetCommentsByNovelID 小说下的根评论，按创建时间从新到旧
func GetCommentsByNovelID(novelID int64, param *models.ParamCommentList) (*models.Page[models.CommentDTO], error) {
	comments, total, err := mysql.SelectRootCommentsByNovelID(nil, novelID, param.PageNum, param.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "logic:GetCommentsByNovelID: SelectRootCommentsByNovelID")
	}
	return buildCommentPage(comments, param.PageNum, param.PageSize, total), nil
}

// GetRepliesByCommentID 根评论下的回复，按创建时间从旧到新
func GetRepliesByCommentID(parentID int64, param *models.ParamCommentList) (*models.Page[models.CommentDTO], error) {
	parent, err := mysql.SelectCommentByID(nil, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(novelhub.ErrCommentNotFound, "logic:GetRepliesByCommentID: SelectCommentByID")
		}
		return nil, errors.Wrap(err, "logic:GetRepliesByCommentID: SelectCommentByID")
	}
	if !parent.IsRoot() {
		return nil, errors.Wrap(novelhub.ErrInvalidParent, "logic:GetRepliesByCommentID: check parent level")
	}

	replies, total, err := mysql.SelectRepliesByParentID(nil, parentID, param.PageNum, param.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "logic:GetRepliesByCommentID: SelectRepliesByParentID")
	}
	return buildCommentPage(replies, param.PageNum, param.PageSize, total), nil
}

// UpdateComment 只有作者本人可以编辑
func UpdateComment(userID, commentID int64, param *models.ParamCommentUpdate) (*models.CommentDTO, error) {
	if utils.IsBlank(param.Content) {
		return nil, errors.Wrap(novelhub.ErrBlankContent, "logic:UpdateComment: check content")
	}

	comment, err := mysql.SelectCommentByID(nil, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(novelhub.ErrCommentNotFound, "logic:UpdateComment: SelectCommentByID")
		}
		return nil, errors.Wrap(err, "logic:UpdateComment: SelectCommentByID")
	}
	if comment.UserID != userID {
		return nil, errors.Wrap(novelhub.ErrForbidden, "logic:UpdateComment: check owner")
	}

	if err := mysql.UpdateCommentContent(nil, commentID, param.Content); err != nil {
		return nil, errors.Wrap(err, "logic:UpdateComment: UpdateCommentContent")
	}

	comment, err = mysql.SelectCommentByID(nil, commentID)
	if err != nil {
		return nil, errors.Wrap(err, "logic:UpdateComment: SelectCommentByID(after update)")
	}
	return comment.ToDTO(), nil
}

// DeleteComment 只有作者本人可以删除
// 删除根评论时级联删除其下所有回复；删除回复时父评论 reply_count 减一
func DeleteComment(userID, commentID int64) error {
	comment, err := mysql.SelectCommentByID(nil, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(novelhub.ErrCommentNotFound, "logic:DeleteComment: SelectCommentByID")
		}
		return errors.Wrap(err, "logic:DeleteComment: SelectCommentByID")
	}
	if comment.UserID != userID {
		return errors.Wrap(novelhub.ErrForbidden, "logic:DeleteComment: check owner")
	}

	commentIDs := []int64{commentID}
	if comment.IsRoot() {
		replyIDs, err := mysql.SelectReplyIDsByParentID(nil, commentID)
		if err != nil {
			return errors.Wrap(err, "logic:DeleteComment: SelectReplyIDsByParentID")
		}
		commentIDs = append(commentIDs, replyIDs...)
	}

	tx := mysql.GetDB().Begin()
	if err := mysql.DeleteCommentsByCommentIDs(tx, commentIDs); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "logic:DeleteComment: DeleteCommentsByCommentIDs")
	}
	if err := mysql.DeleteCommentLikeMappingsByCommentIDs(tx, commentIDs); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "logic:DeleteComment: DeleteCommentLikeMappingsByCommentIDs")
	}
	if !comment.IsRoot() {
		if err := mysql.IncrCommentCountField(tx, "reply_count", *comment.ParentID, -1); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "logic:DeleteComment: IncrCommentCountField")
		}
	}
	tx.Commit()

	// 点赞缓存清理失败不影响删除结果，key 过期后自然消失
	if err := redis.DelCommentLikeKeysByCommentIDs(commentIDs); err != nil {
		logger.Warnf("logic:DeleteComment: DelCommentLikeKeysByCommentIDs failed, reason: %v", err.Error())
	}
	return nil
}

// LikeComment 点赞开关，再次调用取消点赞，返回调用后的点赞状态
// redis 先行生效，db 的持久化默认走 kafka 异步完成
func LikeComment(userID, commentID int64) (bool, error) {
	if _, err := mysql.SelectCommentByID(nil, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.Wrap(novelhub.ErrCommentNotFound, "logic:LikeComment: SelectCommentByID")
		}
		return false, errors.Wrap(err, "logic:LikeComment: SelectCommentByID")
	}

	liked, err := redis.CheckCommentLikeIfExistUser(commentID, userID)
	if err != nil {
		return false, errors.Wrap(err, "logic:LikeComment: CheckCommentLikeIfExistUser")
	}
	if !liked { // set 里没有不代表没点过赞，可能只是缓存失效，需要回源确认
		liked, err = rebuild.RebuildCommentLikeSet(commentID, userID)
		if err != nil {
			return false, errors.Wrap(err, "logic:LikeComment: RebuildCommentLikeSet")
		}
	}

	// 保证计数缓存存在，否则 IncrBy 会从 0 开始累加
	if _, _, err := rebuild.RebuildCommentLikeCount(commentID); err != nil {
		return false, errors.Wrap(err, "logic:LikeComment: RebuildCommentLikeCount")
	}

	var offset int64
	if liked { // 取消点赞
		offset = -1
		if err := redis.RemCommentLikeUser(commentID, userID); err != nil {
			return false, errors.Wrap(err, "logic:LikeComment: RemCommentLikeUser")
		}
	} else {
		offset = 1
		if err := redis.AddCommentLikeUser(commentID, userID); err != nil {
			return false, errors.Wrap(err, "logic:LikeComment: AddCommentLikeUser")
		}
	}
	if err := redis.IncrCommentLikeCount(commentID, offset); err != nil {
		return false, errors.Wrap(err, "logic:LikeComment: IncrCommentLikeCount")
	}

	if err := persistCommentLike(commentID, userID, liked); err != nil {
		return false, errors.Wrap(err, "logic:LikeComment: persistCommentLike")
	}
	return !liked, nil
}

// kafka 可用时异步持久化，否则同步写 db
func persistCommentLike(commentID, userID int64, liked bool) error {
	if kafka.Enabled() {
		var err error
		if liked {
			err = kafka.RemoveCommentLikeMapping(commentID, userID)
		} else {
			err = kafka.CreateCommentLikeMapping(commentID, userID)
		}
		if err != nil {
			return errors.Wrap(err, "send like mapping message")
		}

		var offset int64 = 1
		if liked {
			offset = -1
		}
		return errors.Wrap(kafka.IncrCommentLikeCount(commentID, offset), "send like incr message")
	}

	tx := mysql.GetDB().Begin()
	var err error
	var offset int64
	if liked {
		offset = -1
		err = mysql.DeleteCommentLikeMapping(tx, commentID, userID)
	} else {
		offset = 1
		err = mysql.CreateCommentLikeMapping(tx, commentID, userID)
	}
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "write like mapping")
	}
	if err := mysql.IncrCommentCountField(tx, "like_count", commentID, offset); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "incr like_count")
	}
	tx.Commit()
	return nil
}

// CheckCommentLikeIfLiked 查询当前用户对某条评论的点赞状态
func CheckCommentLikeIfLiked(userID, commentID int64) (bool, error) {
	liked, err := redis.CheckCommentLikeIfExistUser(commentID, userID)
	if err != nil {
		return false, errors.Wrap(err, "logic:CheckCommentLikeIfLiked: CheckCommentLikeIfExistUser")
	}
	if liked {
		return true, nil
	}

	liked, err = rebuild.RebuildCommentLikeSet(commentID, userID)
	return liked, errors.Wrap(err, "logic:CheckCommentLikeIfLiked: RebuildCommentLikeSet")
}

// 批量用缓存里的点赞数覆盖 db 冗余计数，miss 的保留 db 值
func buildCommentPage(comments []models.Comment, page, size, total int64) *models.Page[models.CommentDTO] {
	commentIDs := make([]int64, 0, len(comments))
	for i := 0; i < len(comments); i++ {
		commentIDs = append(commentIDs, comments[i].ID)
	}

	counts, err := redis.GetCommentLikeCounts(commentIDs)
	if err != nil {
		logger.Warnf("logic:buildCommentPage: GetCommentLikeCounts failed, reason: %v", err.Error())
		counts = map[int64]int64{}
	}

	dtos := make([]models.CommentDTO, 0, len(comments))
	for i := 0; i < len(comments); i++ {
		dto := comments[i].ToDTO()
		if count, ok := counts[dto.CommentID]; ok {
			dto.LikeCount = count
		}
		dtos = append(dtos, *dto)
	}
	return models.NewPage(dtos, page, size, total)
}
