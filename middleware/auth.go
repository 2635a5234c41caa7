package middleware

import (
	"strings"

	controller "novelhub/controller/Common"
	novelhub "novelhub/errors"
	"novelhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// 认证中间件，基于 JWT
func Auth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get("Authorization")
		if len(header) == 0 {
			controller.ResponseError(ctx, controller.CodeNeedLogin)
			ctx.Abort()
			return
		}

		// 协议固定为 Bearer
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			controller.ResponseErrorWithMsg(ctx, controller.CodeInvalidToken, "不支持的认证协议")
			ctx.Abort()
			return
		}
		if parts[1] == "null" {
			controller.ResponseError(ctx, controller.CodeInvalidToken)
			ctx.Abort()
			return
		}

		userID, err := utils.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, novelhub.ErrInvalidToken) {
				controller.ResponseError(ctx, controller.CodeInvalidToken)
			} else if errors.Is(err, novelhub.ErrExpiredToken) {
				controller.ResponseError(ctx, controller.CodeExpiredToken)
			} else {
				controller.ResponseErrorWithMsg(ctx, controller.CodeInternalErr, "解析 token 失败")
			}
			ctx.Abort()
			return
		}

		ctx.Set("user_id", userID)
		ctx.Next()
	}
}
