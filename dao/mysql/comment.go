package mysql

import (
	"fmt"
	"novelhub/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateComment(tx *gorm.DB, comment *models.Comment) error {
	useDB := getUseDB(tx)

	res := useDB.Create(comment)
	return errors.Wrap(res.Error, "mysql: CreateComment failed")
}

func SelectCommentByID(tx *gorm.DB, commentID int64) (*models.Comment, error) {
	useDB := getUseDB(tx)

	var comment models.Comment
	res := useDB.First(&comment, "id = ?", commentID)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql: SelectCommentByID failed")
	}
	return &comment, nil
}

// 递增评论的计数字段（reply_count / like_count）
func IncrCommentCountField(tx *gorm.DB, field string, commentID int64, offset int64) error {
	if offset == 0 {
		return nil
	}
	if field != "reply_count" && field != "like_count" {
		return errors.Errorf("mysql: IncrCommentCountField: unexpected field %q", field)
	}
	useDB := getUseDB(tx)

	expr := fmt.Sprintf("%s + %d", field, offset)
	res := useDB.Model(&models.Comment{}).Where("id = ?", commentID).Update(field, gorm.Expr(expr))
	return errors.Wrap(res.Error, "mysql: IncrCommentCountField failed")
}

// 根评论按创建时间倒序分页
func SelectRootCommentsByNovelID(tx *gorm.DB, novelID, page, size int64) ([]models.Comment, int64, error) {
	useDB := getUseDB(tx)

	query := useDB.Model(&models.Comment{}).Where("novel_id = ? AND parent_id IS NULL", novelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "mysql: SelectRootCommentsByNovelID count failed")
	}

	comments := make([]models.Comment, 0)
	res := query.Order("created_at DESC, id DESC").Offset(int(page * size)).Limit(int(size)).Find(&comments)
	return comments, total, errors.Wrap(res.Error, "mysql: SelectRootCommentsByNovelID failed")
}

// 回复按创建时间升序分页（楼中楼从旧到新）
func SelectRepliesByParentID(tx *gorm.DB, parentID, page, size int64) ([]models.Comment, int64, error) {
	useDB := getUseDB(tx)

	query := useDB.Model(&models.Comment{}).Where("parent_id = ?", parentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "mysql: SelectRepliesByParentID count failed")
	}

	comments := make([]models.Comment, 0)
	res := query.Order("created_at ASC, id ASC").Offset(int(page * size)).Limit(int(size)).Find(&comments)
	return comments, total, errors.Wrap(res.Error, "mysql: SelectRepliesByParentID failed")
}

func SelectReplyIDsByParentID(tx *gorm.DB, parentID int64) ([]int64, error) {
	useDB := getUseDB(tx)

	replyIDs := make([]int64, 0)
	res := useDB.Model(&models.Comment{}).Where("parent_id = ?", parentID).Pluck("id", &replyIDs)
	return replyIDs, errors.Wrap(res.Error, "mysql: SelectReplyIDsByParentID failed")
}

func UpdateCommentContent(tx *gorm.DB, commentID int64, content string) error {
	useDB := getUseDB(tx)

	res := useDB.Model(&models.Comment{}).Where("id = ?", commentID).Update("content", content)
	return errors.Wrap(res.Error, "mysql: UpdateCommentContent failed")
}

func DeleteCommentsByCommentIDs(tx *gorm.DB, commentIDs []int64) error {
	useDB := getUseDB(tx)

	res := useDB.Delete(&models.Comment{}, commentIDs)
	return errors.Wrap(res.Error, "mysql: DeleteCommentsByCommentIDs failed")
}

/* comment_user_like_mappings */

func CreateCommentLikeMapping(tx *gorm.DB, commentID, userID int64) error {
	useDB := getUseDB(tx)

	res := useDB.Create(&models.CommentUserLikeMapping{
		CommentID: commentID,
		UserID:    userID,
	})
	// 重复点赞的写入直接忽略
	if res.Error != nil && !IsDuplicateKeyError(res.Error) {
		return errors.Wrap(res.Error, "mysql: CreateCommentLikeMapping failed")
	}
	return nil
}

func DeleteCommentLikeMapping(tx *gorm.DB, commentID, userID int64) error {
	useDB := getUseDB(tx)

	res := useDB.Delete(&models.CommentUserLikeMapping{}, "comment_id = ? AND user_id = ?", commentID, userID)
	return errors.Wrap(res.Error, "mysql: DeleteCommentLikeMapping failed")
}

func DeleteCommentLikeMappingsByCommentIDs(tx *gorm.DB, commentIDs []int64) error {
	useDB := getUseDB(tx)

	res := useDB.Delete(&models.CommentUserLikeMapping{}, "comment_id IN ?", commentIDs)
	return errors.Wrap(res.Error, "mysql: DeleteCommentLikeMappingsByCommentIDs failed")
}

func CheckCommentLikeMappingIfExist(tx *gorm.DB, commentID, userID int64) (bool, error) {
	useDB := getUseDB(tx)

	var count int64
	res := useDB.Model(&models.CommentUserLikeMapping{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count)
	return count > 0, errors.Wrap(res.Error, "mysql: CheckCommentLikeMappingIfExist failed")
}

func SelectLikeUserIDsByCommentID(tx *gorm.DB, commentID int64) ([]int64, error) {
	useDB := getUseDB(tx)

	userIDs := make([]int64, 0)
	res := useDB.Model(&models.CommentUserLikeMapping{}).Where("comment_id = ?", commentID).Pluck("user_id", &userIDs)
	return userIDs, errors.Wrap(res.Error, "mysql: SelectLikeUserIDsByCommentID failed")
}

func CountLikesByCommentID(tx *gorm.DB, commentID int64) (int64, error) {
	useDB := getUseDB(tx)

	var count int64
	res := useDB.Model(&models.CommentUserLikeMapping{}).Where("comment_id = ?", commentID).Count(&count)
	return count, errors.Wrap(res.Error, "mysql: CountLikesByCommentID failed")
}
