package controller

import (
	"strconv"

	common "novelhub/controller/Common"
	novelhub "novelhub/errors"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/logic"
	"novelhub/models"

	"errors"

	"github.com/gin-gonic/gin"
)

// 路径参数是 snowflake id，超出 int64 的一律视为无效参数
func parsePathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, "无效的 "+name)
		return 0, false
	}
	return id, true
}

// 路径里的 user_id 必须是当前登录用户，不允许操作别人的互动记录
func checkPathUser(ctx *gin.Context) (int64, bool) {
	userID, ok := parsePathID(ctx, "user_id")
	if !ok {
		return 0, false
	}
	if userID != ctx.GetInt64("user_id") {
		common.ResponseError(ctx, common.CodeForbidden)
		return 0, false
	}
	return userID, true
}

// InteractionDetailHandler 互动记录查询接口
//
//	@Summary		互动记录查询接口
//	@Description	查询某个用户对某本小说的互动记录，没有互动过返回空 data
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.InteractionDTO}
//	@Router			/interactions/users/{user_id}/novels/{novel_id} [get]
func InteractionDetailHandler(ctx *gin.Context) {
	userID, ok := checkPathUser(ctx)
	if !ok {
		return
	}
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	interactionDTO, err := logic.GetInteraction(userID, novelID)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, interactionDTO)
}

// InteractionFollowHandler 关注开关接口
//
//	@Summary		关注开关接口
//	@Description	翻转关注状态，没有互动记录时创建
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.InteractionDTO}
//	@Router			/interactions/users/{user_id}/novels/{novel_id}/follow [post]
func InteractionFollowHandler(ctx *gin.Context) {
	interactionToggleHelper(ctx, logic.ToggleFollow)
}

// InteractionWishlistHandler 书单开关接口
//
//	@Summary		书单开关接口
//	@Description	翻转书单状态，没有互动记录时创建
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.InteractionDTO}
//	@Router			/interactions/users/{user_id}/novels/{novel_id}/wishlist [post]
func InteractionWishlistHandler(ctx *gin.Context) {
	interactionToggleHelper(ctx, logic.ToggleWishlist)
}

// InteractionNotifyHandler 更新通知开关接口
//
//	@Summary		更新通知开关接口
//	@Description	翻转更新通知状态，没有互动记录时创建
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.InteractionDTO}
//	@Router			/interactions/users/{user_id}/novels/{novel_id}/notify [post]
func InteractionNotifyHandler(ctx *gin.Context) {
	interactionToggleHelper(ctx, logic.ToggleNotify)
}

func interactionToggleHelper(ctx *gin.Context, toggle func(userID, novelID int64) (*models.InteractionDTO, error)) {
	userID, ok := checkPathUser(ctx)
	if !ok {
		return
	}
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	interactionDTO, err := toggle(userID, novelID)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, interactionDTO)
}

// InteractionReadHandler 阅读进度上报接口
//
//	@Summary		阅读进度上报接口
//	@Description	覆盖阅读游标并累加阅读计数，没有互动记录时创建
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			query	models.ParamReadingProgress	false	"查询参数"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.InteractionDTO}
//	@Router			/interactions/users/{user_id}/novels/{novel_id}/read [post]
func InteractionReadHandler(ctx *gin.Context) {
	userID, ok := checkPathUser(ctx)
	if !ok {
		return
	}
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	param := &models.ParamReadingProgress{}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	interactionDTO, err := logic.UpdateReadingProgress(userID, novelID, param.ChapterNumber, param.ChapterID)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, interactionDTO)
}

// InteractionRemoveHandler 互动记录删除接口
//
//	@Summary		互动记录删除接口
//	@Description	删除整条互动记录，记录不存在也返回成功
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response
//	@Router			/interactions/users/{user_id}/novels/{novel_id} [delete]
func InteractionRemoveHandler(ctx *gin.Context) {
	userID, ok := checkPathUser(ctx)
	if !ok {
		return
	}
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	if err := logic.DeleteInteraction(userID, novelID); err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, nil)
}

// InteractionFollowingListHandler 用户关注列表接口
//
//	@Summary		用户关注列表接口
//	@Description	当前用户关注的小说，按最近更新倒序分页
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			query	models.ParamInteractionList	false	"查询参数"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.Page[models.InteractionDTO]}
//	@Router			/interactions/users/{user_id}/following [get]
func InteractionFollowingListHandler(ctx *gin.Context) {
	interactionListHelper(ctx, logic.GetUserFollowingList)
}

// InteractionWishlistListHandler 用户书单列表接口
//
//	@Summary		用户书单列表接口
//	@Description	当前用户书单里的小说，按最近更新倒序分页
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			query	models.ParamInteractionList	false	"查询参数"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.Page[models.InteractionDTO]}
//	@Router			/interactions/users/{user_id}/wishlist [get]
func InteractionWishlistListHandler(ctx *gin.Context) {
	interactionListHelper(ctx, logic.GetUserWishlist)
}

// InteractionUserListHandler 用户互动列表接口
//
//	@Summary		用户互动列表接口
//	@Description	当前用户的全部互动记录，不筛选状态，按最近更新倒序分页
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			query	models.ParamInteractionList	false	"查询参数"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.Page[models.InteractionDTO]}
//	@Router			/interactions/users/{user_id} [get]
func InteractionUserListHandler(ctx *gin.Context) {
	interactionListHelper(ctx, logic.GetUserInteractionList)
}

func interactionListHelper(ctx *gin.Context, list func(userID int64, param *models.ParamInteractionList) (*models.Page[models.InteractionDTO], error)) {
	userID, ok := checkPathUser(ctx)
	if !ok {
		return
	}

	param := &models.ParamInteractionList{
		PageNum:  0,
		PageSize: 10,
	}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	page, err := list(userID, param)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, page)
}

// NovelInteractionListHandler 小说互动列表接口
//
//	@Summary		小说互动列表接口
//	@Description	与某本小说有互动记录的用户列表，按最近更新倒序分页
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Param			object	query	models.ParamInteractionList	false	"查询参数"
//	@Success		200	{object}	common.Response{data=models.Page[models.InteractionDTO]}
//	@Router			/interactions/novels/{novel_id} [get]
func NovelInteractionListHandler(ctx *gin.Context) {
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	param := &models.ParamInteractionList{
		PageNum:  0,
		PageSize: 10,
	}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	page, err := logic.GetInteractionsByNovel(novelID, param)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, page)
}

// NovelFollowCountHandler 小说关注数接口
//
//	@Summary		小说关注数接口
//	@Description	查询小说当前的关注人数
//	@Tags			互动相关接口
//	@Produce		application/json
//	@Success		200	{object}	common.Response{data=common.ResponseFollowCount}
//	@Router			/interactions/novels/{novel_id}/followers/count [get]
func NovelFollowCountHandler(ctx *gin.Context) {
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	count, err := logic.GetFollowCount(novelID)
	if err != nil {
		if errors.Is(err, novelhub.ErrTimeout) {
			common.ResponseError(ctx, common.CodeTimeout)
		} else {
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, &common.ResponseFollowCount{
		NovelID:     novelID,
		FollowCount: count,
	})
}
