package mysql

import (
	"fmt"
	"novelhub/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 允许原子翻转的布尔字段
var interactionFlagFields = map[string]bool{
	"has_following": true,
	"in_wishlist":   true,
	"notify":        true,
}

func CreateInteraction(tx *gorm.DB, interaction *models.Interaction) error {
	useDB := getUseDB(tx)

	res := useDB.Create(interaction)
	return errors.Wrap(res.Error, "mysql: CreateInteraction failed")
}

func SelectInteraction(tx *gorm.DB, userID, novelID int64) (*models.Interaction, error) {
	useDB := getUseDB(tx)

	var interaction models.Interaction
	res := useDB.Where("user_id = ? AND novel_id = ?", userID, novelID).First(&interaction)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql: SelectInteraction failed")
	}
	return &interaction, nil
}

// 原子翻转布尔字段，避免读改写竞争，返回受影响行数
func ToggleInteractionFlag(tx *gorm.DB, field string, userID, novelID int64) (int64, error) {
	if !interactionFlagFields[field] {
		return 0, errors.Errorf("mysql: ToggleInteractionFlag: unexpected field %q", field)
	}
	useDB := getUseDB(tx)

	expr := fmt.Sprintf("NOT %s", field)
	res := useDB.Model(&models.Interaction{}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Update(field, gorm.Expr(expr))
	return res.RowsAffected, errors.Wrap(res.Error, "mysql: ToggleInteractionFlag failed")
}

// 无条件覆盖阅读游标并递增 total_chapter_reads，返回受影响行数
func UpdateReadingProgress(tx *gorm.DB, userID, novelID, chapterNumber, chapterID int64, readAt time.Time) (int64, error) {
	useDB := getUseDB(tx)

	res := useDB.Model(&models.Interaction{}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Updates(map[string]any{
			"current_chapter_number": chapterNumber,
			"current_chapter_id":     chapterID,
			"last_read_at":           readAt,
			"total_chapter_reads":    gorm.Expr("total_chapter_reads + 1"),
		})
	return res.RowsAffected, errors.Wrap(res.Error, "mysql: UpdateReadingProgress failed")
}

func CountFollowersByNovelID(tx *gorm.DB, novelID int64) (int64, error) {
	useDB := getUseDB(tx)

	var count int64
	res := useDB.Model(&models.Interaction{}).
		Where("novel_id = ? AND has_following = ?", novelID, true).
		Count(&count)
	return count, errors.Wrap(res.Error, "mysql: CountFollowersByNovelID failed")
}

// 按用户查互动记录，field 为空表示不过滤布尔字段
func SelectInteractionsByUserID(tx *gorm.DB, userID int64, field string, page, size int64) ([]models.Interaction, int64, error) {
	if field != "" && !interactionFlagFields[field] {
		return nil, 0, errors.Errorf("mysql: SelectInteractionsByUserID: unexpected field %q", field)
	}
	useDB := getUseDB(tx)

	query := useDB.Model(&models.Interaction{}).Where("user_id = ?", userID)
	if field != "" {
		query = query.Where(fmt.Sprintf("%s = ?", field), true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "mysql: SelectInteractionsByUserID count failed")
	}

	interactions := make([]models.Interaction, 0)
	res := query.Order("updated_at DESC").Offset(int(page * size)).Limit(int(size)).Find(&interactions)
	return interactions, total, errors.Wrap(res.Error, "mysql: SelectInteractionsByUserID failed")
}

func SelectInteractionsByNovelID(tx *gorm.DB, novelID int64, page, size int64) ([]models.Interaction, int64, error) {
	useDB := getUseDB(tx)

	query := useDB.Model(&models.Interaction{}).Where("novel_id = ?", novelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "mysql: SelectInteractionsByNovelID count failed")
	}

	interactions := make([]models.Interaction, 0)
	res := query.Order("updated_at DESC").Offset(int(page * size)).Limit(int(size)).Find(&interactions)
	return interactions, total, errors.Wrap(res.Error, "mysql: SelectInteractionsByNovelID failed")
}

func DeleteInteraction(tx *gorm.DB, userID, novelID int64) error {
	useDB := getUseDB(tx)

	res := useDB.Delete(&models.Interaction{}, "user_id = ? AND novel_id = ?", userID, novelID)
	return errors.Wrap(res.Error, "mysql: DeleteInteraction failed")
}
