package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool `json:"success"` // 业务是否成功
	Code    `json:"code"`         // 业务内部指定的响应码
	Message any  `json:"message"`        // 响应消息
	Data    any  `json:"data,omitempty"` // 响应数据
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, &Response{
		Success: true,
		Code:    CodeSuccess,
		Message: "成功",
		Data:    data,
	})
}

func ResponseError(ctx *gin.Context, code Code) {
	ctx.JSON(http.StatusOK, &Response{
		Success: false,
		Code:    code,
		Message: code.getMsg(),
		Data:    nil,
	})
}

func ResponseErrorWithMsg(ctx *gin.Context, code Code, msg any) {
	ctx.JSON(http.StatusOK, &Response{
		Success: false,
		Code:    code,
		Message: msg,
		Data:    nil,
	})
}
