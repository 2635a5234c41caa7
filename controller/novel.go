package controller

import (
	common "novelhub/controller/Common"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/logic"
	"novelhub/models"

	"github.com/gin-gonic/gin"
)

// NovelTrendingHandler 趋势小说接口
//
//	@Summary		趋势小说接口
//	@Description	基于最近阅读热度的 top-k 小说
//	@Tags			小说相关接口
//	@Produce		application/json
//	@Param			object	query	models.ParamTrending	false	"查询参数"
//	@Success		200	{object}	common.Response{data=common.ResponseTrendingNovels}
//	@Router			/trending/novels [get]
func NovelTrendingHandler(ctx *gin.Context) {
	param := &models.ParamTrending{
		K: 10,
	}
	if err := ctx.ShouldBindQuery(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	novelIDs, err := logic.GetTrendingNovelIDs(param.K)
	if err != nil {
		common.ResponseError(ctx, common.CodeInternalErr)
		logger.ErrorWithStack(err)
		return
	}

	common.ResponseSuccess(ctx, &common.ResponseTrendingNovels{
		NovelIDs: novelIDs,
	})
}
