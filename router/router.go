package router

import (
	"fmt"
	"net/http"

	"novelhub/controller"
	"novelhub/logger"
	"novelhub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var router *gin.Engine

func Init() {
	if !viper.GetBool("server.develop_mode") {
		gin.SetMode(gin.ReleaseMode)
	}

	router = gin.New()
	frontendPath := viper.GetString("CORF.frontend_path")
	router.Use(logger.GinLogger(), logger.GinRecovery(true), middleware.RateLimit(0.6, 5000), middleware.CORF(frontendPath)) // 全局限流

	v1 := router.Group("/api/v1")

	/* Interaction */
	interactionGrp := v1.Group("/interactions")

	userGrp := interactionGrp.Group("/users/:user_id")
	userGrp.Use(middleware.Auth())
	userGrp.GET("/novels/:novel_id", controller.InteractionDetailHandler)
	userGrp.POST("/novels/:novel_id/follow", controller.InteractionFollowHandler)
	userGrp.POST("/novels/:novel_id/wishlist", controller.InteractionWishlistHandler)
	userGrp.POST("/novels/:novel_id/notify", controller.InteractionNotifyHandler)
	userGrp.POST("/novels/:novel_id/read", controller.InteractionReadHandler)
	userGrp.DELETE("/novels/:novel_id", controller.InteractionRemoveHandler)
	userGrp.GET("", controller.InteractionUserListHandler)
	userGrp.GET("/following", controller.InteractionFollowingListHandler)
	userGrp.GET("/wishlist", controller.InteractionWishlistListHandler)

	interactionGrp.GET("/novels/:novel_id", controller.NovelInteractionListHandler)
	interactionGrp.GET("/novels/:novel_id/followers/count", controller.NovelFollowCountHandler)

	/* Novel */
	v1.GET("/trending/novels", controller.NovelTrendingHandler)
	v1.GET("/novels/:novel_id/comments", controller.CommentListHandler)

	/* Comment */
	commentGrp := v1.Group("/comments")
	commentGrp.GET("/:comment_id", controller.CommentDetailHandler)
	commentGrp.GET("/:comment_id/replies", controller.CommentReplyListHandler)

	commentAuthGrp := v1.Group("/comments")
	commentAuthGrp.Use(middleware.Auth(), middleware.RateLimitBySmooth(viper.GetInt("service.comment.write_rate"))) // 写接口限速
	commentAuthGrp.POST("", controller.CommentCreateHandler)
	commentAuthGrp.POST("/:comment_id/reply", controller.CommentReplyHandler)
	commentAuthGrp.POST("/:comment_id/like", controller.CommentLikeHandler)
	commentAuthGrp.PUT("/:comment_id", controller.CommentUpdateHandler)
	commentAuthGrp.DELETE("/:comment_id", controller.CommentRemoveHandler)
}

func GetServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", viper.GetString("server.ip"), viper.GetInt("server.port")),
		Handler: router,
	}
}

// GetEngine 测试用
func GetEngine() *gin.Engine {
	return router
}
