package controller

import (
	common "novelhub/controller/Common"
	novelhub "novelhub/errors"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/logic"
	"novelhub/models"

	"errors"

	"github.com/gin-gonic/gin"
)

// CommentCreateHandler 创建评论接口
//
//	@Summary		创建评论接口
//	@Description	在小说下创建根评论
//	@Tags			评论相关接口
//	@Accept			application/json
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			body	models.ParamCommentCreate	false	"评论的详细信息"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.CommentDTO}
//	@Router			/comments [post]
func CommentCreateHandler(ctx *gin.Context) {
	param := new(models.ParamCommentCreate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	userID := ctx.GetInt64("user_id")
	commentDTO, err := logic.CreateComment(userID, param)
	if err != nil {
		if errors.Is(err, novelhub.ErrBlankContent) {
			common.ResponseError(ctx, common.CodeBlankContent)
		} else {
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, commentDTO)
}

// CommentReplyHandler 创建回复接口
//
//	@Summary		创建回复接口
//	@Description	在根评论下创建回复，最多两层
//	@Tags			评论相关接口
//	@Accept			application/json
//	@Produce		application/json
//	@Param			Authorization	header	string					false	"Bearer 用户令牌"
//	@Param			object			body	models.ParamReplyCreate	false	"回复的详细信息"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.CommentDTO}
//	@Router			/comments/{comment_id}/reply [post]
func CommentReplyHandler(ctx *gin.Context) {
	parentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	param := new(models.ParamReplyCreate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	userID := ctx.GetInt64("user_id")
	commentDTO, err := logic.CreateReply(userID, parentID, param)
	if err != nil {
		switch {
		case errors.Is(err, novelhub.ErrCommentNotFound):
			common.ResponseError(ctx, common.CodeNoSuchComment)
		case errors.Is(err, novelhub.ErrInvalidParent):
			common.ResponseError(ctx, common.CodeInvalidParent)
		case errors.Is(err, novelhub.ErrInvalidReplyTo):
			common.ResponseError(ctx, common.CodeInvalidReplyTo)
		case errors.Is(err, novelhub.ErrBlankContent):
			common.ResponseError(ctx, common.CodeBlankContent)
		default:
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, commentDTO)
}

// CommentDetailHandler 评论详情接口
//
//	@Summary		评论详情接口
//	@Description	根据 comment_id 查询单条评论
//	@Tags			评论相关接口
//	@Produce		application/json
//	@Success		200	{object}	common.Response{data=models.CommentDTO}
//	@Router			/comments/{comment_id} [get]
func CommentDetailHandler(ctx *gin.Context) {
	commentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	commentDTO, err := logic.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, novelhub.ErrCommentNotFound) {
			common.ResponseError(ctx, common.CodeNoSuchComment)
		} else {
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, commentDTO)
}

// CommentListHandler 评论列表接口
//
//	@Summary		评论列表接口
//	@Description	小说下的根评论列表，按创建时间从新到旧分页
//	@Tags			评论相关接口
//	@Produce		application/json
//	@Param			object	query	models.ParamCommentList	false	"查询参数"
//	@Success		200	{object}	common.Response{data=models.Page[models.CommentDTO]}
//	@Router			/novels/{novel_id}/comments [get]
func CommentListHandler(ctx *gin.Context) {
	novelID, ok := parsePathID(ctx, "novel_id")
	if !ok {
		return
	}

	param := &models.ParamCommentList{
		PageNum:  0,
		PageSize: 10,
	}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	page, err := logic.GetCommentsByNovelID(novelID, param)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, page)
}

// CommentReplyListHandler 回复列表接口
//
//	@Summary		回复列表接口
//	@Description	根评论下的回复列表，按创建时间从旧到新分页
//	@Tags			评论相关接口
//	@Produce		application/json
//	@Param			object	query	models.ParamCommentList	false	"查询参数"
//	@Success		200	{object}	common.Response{data=models.Page[models.CommentDTO]}
//	@Router			/comments/{comment_id}/replies [get]
func CommentReplyListHandler(ctx *gin.Context) {
	parentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	param := &models.ParamCommentList{
		PageNum:  0,
		PageSize: 10,
	}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	page, err := logic.GetRepliesByCommentID(parentID, param)
	if err != nil {
		switch {
		case errors.Is(err, novelhub.ErrCommentNotFound):
			common.ResponseError(ctx, common.CodeNoSuchComment)
		case errors.Is(err, novelhub.ErrInvalidParent):
			common.ResponseError(ctx, common.CodeInvalidParent)
		default:
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, page)
}

// CommentUpdateHandler 编辑评论接口
//
//	@Summary		编辑评论接口
//	@Description	作者本人编辑评论内容
//	@Tags			评论相关接口
//	@Accept			application/json
//	@Produce		application/json
//	@Param			Authorization	header	string						false	"Bearer 用户令牌"
//	@Param			object			body	models.ParamCommentUpdate	false	"新的评论内容"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=models.CommentDTO}
//	@Router			/comments/{comment_id} [put]
func CommentUpdateHandler(ctx *gin.Context) {
	commentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	param := new(models.ParamCommentUpdate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	userID := ctx.GetInt64("user_id")
	commentDTO, err := logic.UpdateComment(userID, commentID, param)
	if err != nil {
		switch {
		case errors.Is(err, novelhub.ErrCommentNotFound):
			common.ResponseError(ctx, common.CodeNoSuchComment)
		case errors.Is(err, novelhub.ErrForbidden):
			common.ResponseError(ctx, common.CodeForbidden)
		case errors.Is(err, novelhub.ErrBlankContent):
			common.ResponseError(ctx, common.CodeBlankContent)
		default:
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, commentDTO)
}

// CommentRemoveHandler 删除评论接口
//
//	@Summary		删除评论接口
//	@Description	根据 comment_id 删除评论，根评论级联删除其下回复
//	@Tags			评论相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response
//	@Router			/comments/{comment_id} [delete]
func CommentRemoveHandler(ctx *gin.Context) {
	commentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	userID := ctx.GetInt64("user_id")
	if err := logic.DeleteComment(userID, commentID); err != nil {
		switch {
		case errors.Is(err, novelhub.ErrCommentNotFound):
			common.ResponseError(ctx, common.CodeNoSuchComment)
		case errors.Is(err, novelhub.ErrForbidden):
			common.ResponseError(ctx, common.CodeForbidden)
		default:
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, nil)
}

// CommentLikeHandler 评论点赞接口
//
//	@Summary		评论点赞接口
//	@Description	点赞开关，再次调用取消点赞
//	@Tags			评论相关接口
//	@Produce		application/json
//	@Param			Authorization	header	string	false	"Bearer 用户令牌"
//	@Security		ApiKeyAuth
//	@Success		200	{object}	common.Response{data=common.ResponseCommentLike}
//	@Router			/comments/{comment_id}/like [post]
func CommentLikeHandler(ctx *gin.Context) {
	commentID, ok := parsePathID(ctx, "comment_id")
	if !ok {
		return
	}

	userID := ctx.GetInt64("user_id")
	liked, err := logic.LikeComment(userID, commentID)
	if err != nil {
		if errors.Is(err, novelhub.ErrCommentNotFound) {
			common.ResponseError(ctx, common.CodeNoSuchComment)
		} else {
			common.ResponseError(ctx, common.CodeInternalErr)
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, &common.ResponseCommentLike{
		CommentID: commentID,
		Liked:     liked,
	})
}
