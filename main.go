package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"novelhub/dao/kafka"
	"novelhub/dao/localcache"
	"novelhub/dao/mysql"
	"novelhub/dao/redis"
	"novelhub/internal/utils"
	"novelhub/logger"
	"novelhub/router"
	"novelhub/settings"
	"novelhub/workers"

	"github.com/spf13/viper"
)

func init() {
	path := flag.String("c", "./config/config.json", "config path(file must be named 'config.json')")
	flag.Parse()

	settings.InitSettings(*path)

	logger.InitLogger()

	utils.InitSnowflake()
	utils.InitTrans()
	utils.InitToken()

	mysql.InitMySQL()
	logger.Infof("Initializing MySQL successfully")

	redis.InitRedis()
	logger.Infof("Initializing Redis successfully")

	localcache.InitLocalCache()
	logger.Infof("Initializing Localcache successfully")

	if kafka.Enabled() {
		kafka.InitKafka()
		logger.Infof("Initializing Kafka successfully")
	}

	router.Init()
	logger.Infof("Initializing router successfully")

	workers.InitWorkers() // 后台任务
}

//	@title			NovelHub 接口文档
//	@version		1.0
//	@description	小说阅读平台的互动与评论服务接口

// @BasePath	/api/v1
func main() {
	srv := router.GetServer()

	idleConnsClosed := make(chan interface{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint // 阻塞，直到 SIGINT 信号产生

		// 等待存量请求处理完，超过指定时间强制退出
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(viper.GetInt64("server.shutdown_waitting_time")))
		defer cancel()
		logger.Infof("Shutting down HTTP Server(wait for all connections to be closed)...")

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("NovelHub server shutdown: %v", err)
		}
		logger.Infof("Http server closed successfully")
		close(idleConnsClosed)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Errorf("HTTP server ListenAndServe: %v", err)
	}

	<-idleConnsClosed // 直到 close 后，主线程才会退出
	logger.Infof("Waitting for all background tasks to complete...")
	if kafka.Enabled() {
		kafka.Wait() // 通知消费者退出并等待
	}
	workers.Wait()
	logger.Infof("Done.\n\nNovelHub server closed successfully")
}
