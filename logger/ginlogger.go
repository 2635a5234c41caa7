package logger

import (
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func GinLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		cost := time.Since(start)

		Infof("| %3d | %13v | %15v | %-7s  \"%s\"", ctx.Writer.Status(),
			cost,
			ctx.ClientIP(),
			ctx.Request.Method,
			ctx.Request.URL)
	}
}

func GinRecovery(stack bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// 连接断开导致的 panic 不需要完整堆栈
				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					if se, ok := ne.Err.(*os.SyscallError); ok {
						if strings.Contains(strings.ToLower(se.Error()), "broken pipe") || strings.Contains(strings.ToLower(se.Error()), "connection reset by peer") {
							brokenPipe = true
						}
					}
				}

				httpRequest, _ := httputil.DumpRequest(ctx.Request, false)
				if brokenPipe {
					Errorf("%s\nError: %v\nRequest: %v", ctx.Request.URL.Path, err, string(httpRequest))
					// 连接已经断开，无法再写状态码
					ctx.Error(err.(error)) // nolint: errcheck
					ctx.Abort()
					return
				}

				if stack {
					Errorf("[Recovery from panic]\nError: %v\nRequest: %v\nStack trace:\n%v",
						err,
						string(httpRequest),
						string(debug.Stack()),
					)
				} else {
					Errorf("[Recovery from panic]\nError: %v\nRequest: %v\n",
						err,
						string(httpRequest),
					)
				}
				ctx.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		ctx.Next()
	}
}
