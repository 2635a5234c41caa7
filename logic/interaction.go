package logic

import (
	"fmt"
	"time"

	"novelhub/dao/localcache"
	"novelhub/dao/mysql"
	"novelhub/dao/redis"
	novelhub "novelhub/errors"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/models"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var followCountSfGroup singleflight.Group

const (
	sfTimeout  = 2 * time.Second
	sfInterval = 50 * time.Millisecond
)

// GetInteraction 没有互动记录不是错误，返回 nil
func GetInteraction(userID, novelID int64) (*models.InteractionDTO, error) {
	interaction, err := mysql.SelectInteraction(nil, userID, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "logic:GetInteraction: SelectInteraction")
	}
	return interaction.ToDTO(), nil
}

func ToggleFollow(userID, novelID int64) (*models.InteractionDTO, error) {
	dto, err := toggleInteractionFlag("has_following", userID, novelID)
	if err != nil {
		return nil, errors.Wrap(err, "logic:ToggleFollow: toggleInteractionFlag")
	}

	// 关注数缓存失效
	if err := redis.DelFollowCount(novelID); err != nil {
		logger.Warnf("logic:ToggleFollow: DelFollowCount failed, reason: %v", err.Error())
	}
	return dto, nil
}

func ToggleWishlist(userID, novelID int64) (*models.InteractionDTO, error) {
	dto, err := toggleInteractionFlag("in_wishlist", userID, novelID)
	return dto, errors.Wrap(err, "logic:ToggleWishlist: toggleInteractionFlag")
}

func ToggleNotify(userID, novelID int64) (*models.InteractionDTO, error) {
	dto, err := toggleInteractionFlag("notify", userID, novelID)
	return dto, errors.Wrap(err, "logic:ToggleNotify: toggleInteractionFlag")
}

// 翻转由 db 的 NOT 表达式完成，并发的两次翻转表现为两次翻转，而不是后写覆盖
// 记录不存在时惰性创建，首次翻转的结果一定是 true
func toggleInteractionFlag(field string, userID, novelID int64) (*models.InteractionDTO, error) {
	rows, err := mysql.ToggleInteractionFlag(nil, field, userID, novelID)
	if err != nil {
		return nil, errors.Wrap(err, "toggleInteractionFlag: ToggleInteractionFlag")
	}

	if rows == 0 { // 惰性创建
		interaction := &models.Interaction{
			ID:      utils.GenSnowflakeID(),
			UserID:  userID,
			NovelID: novelID,
		}
		switch field {
		case "has_following":
			interaction.HasFollowing = true
		case "in_wishlist":
			interaction.InWishlist = true
		case "notify":
			interaction.Notify = true
		}

		err = mysql.CreateInteraction(nil, interaction)
		if err == nil {
			return interaction.ToDTO(), nil
		}
		if !mysql.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(err, "toggleInteractionFlag: CreateInteraction")
		}

		// 并发创建输了，记录已经存在，退回到翻转
		if _, err = mysql.ToggleInteractionFlag(nil, field, userID, novelID); err != nil {
			return nil, errors.Wrap(err, "toggleInteractionFlag: ToggleInteractionFlag(retry)")
		}
	}

	interaction, err := mysql.SelectInteraction(nil, userID, novelID)
	if err != nil {
		return nil, errors.Wrap(err, "toggleInteractionFlag: SelectInteraction")
	}
	return interaction.ToDTO(), nil
}

// UpdateReadingProgress 无条件覆盖游标（允许回退），total_chapter_reads 每次调用 +1
func UpdateReadingProgress(userID, novelID, chapterNumber, chapterID int64) (*models.InteractionDTO, error) {
	now := time.Now()

	rows, err := mysql.UpdateReadingProgress(nil, userID, novelID, chapterNumber, chapterID, now)
	if err != nil {
		return nil, errors.Wrap(err, "logic:UpdateReadingProgress: UpdateReadingProgress")
	}

	if rows == 0 { // 惰性创建
		lastReadAt := models.Time(now)
		interaction := &models.Interaction{
			ID:                   utils.GenSnowflakeID(),
			UserID:               userID,
			NovelID:              novelID,
			CurrentChapterNumber: &chapterNumber,
			CurrentChapterID:     &chapterID,
			LastReadAt:           &lastReadAt,
			TotalChapterReads:    1,
		}

		err = mysql.CreateInteraction(nil, interaction)
		if err != nil {
			if !mysql.IsDuplicateKeyError(err) {
				return nil, errors.Wrap(err, "logic:UpdateReadingProgress: CreateInteraction")
			}
			// 并发创建输了，退回到覆盖更新
			if _, err = mysql.UpdateReadingProgress(nil, userID, novelID, chapterNumber, chapterID, now); err != nil {
				return nil, errors.Wrap(err, "logic:UpdateReadingProgress: UpdateReadingProgress(retry)")
			}
		}
	}

	// 热度统计只影响趋势榜，失败不影响请求
	first, err := localcache.IncrNovelRead(novelID, 1)
	if err != nil {
		logger.Warnf("logic:UpdateReadingProgress: IncrNovelRead failed, reason: %v", err.Error())
	} else if first {
		if err := localcache.SetNovelReadCreateTime(novelID, now.Unix()); err != nil {
			logger.Warnf("logic:UpdateReadingProgress: SetNovelReadCreateTime failed, reason: %v", err.Error())
		}
	}

	interaction, err := mysql.SelectInteraction(nil, userID, novelID)
	if err != nil {
		return nil, errors.Wrap(err, "logic:UpdateReadingProgress: SelectInteraction")
	}
	return interaction.ToDTO(), nil
}

// GetFollowCount 优先读缓存，miss 回源 db 并写缓存，singleflight 防止击穿
func GetFollowCount(novelID int64) (int64, error) {
	sfKey := fmt.Sprintf("followcount_%d", novelID)
	count, err := utils.SfDoWithTimeout(&followCountSfGroup, sfKey, sfTimeout, sfInterval, func() (any, error) {
		count, err := redis.GetFollowCount(novelID)
		if err == nil {
			return count, nil
		}
		if !errors.Is(err, redis.Nil) { // 缓存故障，直接读 db
			logger.Warnf("logic:GetFollowCount: GetFollowCount failed, reason: %v, reading db...", err.Error())
		}

		count, err = mysql.CountFollowersByNovelID(nil, novelID)
		if err != nil {
			return int64(0), errors.Wrap(err, "CountFollowersByNovelID")
		}
		if err := redis.SetFollowCount(novelID, count); err != nil {
			logger.Warnf("logic:GetFollowCount: SetFollowCount failed, reason: %v", err.Error())
		}
		return count, nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "logic:GetFollowCount: SfDoWithTimeout")
	}
	return count.(int64), nil
}

func GetUserFollowingList(userID int64, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error) {
	return listInteractionsByUser(userID, "has_following", param)
}

func GetUserWishlist(userID int64, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error) {
	return listInteractionsByUser(userID, "in_wishlist", param)
}

func GetUserInteractionList(userID int64, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error) {
	return listInteractionsByUser(userID, "", param)
}

func listInteractionsByUser(userID int64, field string, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error) {
	interactions, total, err := mysql.SelectInteractionsByUserID(nil, userID, field, param.PageNum, param.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "logic:listInteractionsByUser: SelectInteractionsByUserID")
	}
	return buildInteractionPage(interactions, param.PageNum, param.PageSize, total), nil
}

func GetInteractionsByNovel(novelID int64, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error) {
	interactions, total, err := mysql.SelectInteractionsByNovelID(nil, novelID, param.PageNum, param.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "logic:GetInteractionsByNovel: SelectInteractionsByNovelID")
	}
	return buildInteractionPage(interactions, param.PageNum, param.PageSize, total), nil
}

// DeleteInteraction 删除整条记录，关注、书单、通知三个状态一起丢失
// 记录不存在时静默成功
func DeleteInteraction(userID, novelID int64) error {
	if err := mysql.DeleteInteraction(nil, userID, novelID); err != nil {
		return errors.Wrap(err, "logic:DeleteInteraction: DeleteInteraction")
	}
	if err := redis.DelFollowCount(novelID); err != nil {
		logger.Warnf("logic:DeleteInteraction: DelFollowCount failed, reason: %v", err.Error())
	}
	return nil
}

// GetTrendingNovelIDs 基于窗口内阅读热度的趋势榜
func GetTrendingNovelIDs(k int) ([]string, error) {
	novelIDs, err := localcache.GetTopKNovelIDsByReads(k)
	if err != nil {
		return nil, errors.Wrap(novelhub.ErrInternal, "logic:GetTrendingNovelIDs: GetTopKNovelIDsByReads")
	}
	return utils.ConvertInt64SliceToStringSlice(novelIDs), nil
}

func buildInteractionPage(interactions []models.Interaction, page, size, total int64) *models.Page[models.InteractionDTO] {
	dtos := make([]models.InteractionDTO, 0, len(interactions))
	for i := 0; i < len(interactions); i++ {
		dtos = append(dtos, *interactions[i].ToDTO())
	}
	return models.NewPage(dtos, page, size, total)
}
