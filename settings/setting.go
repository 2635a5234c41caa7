package settings

import "github.com/spf13/viper"

func InitSettings(confPath string) {
	viper.SetDefault("server.ip", "")
	viper.SetDefault("server.port", 1279)
	viper.SetDefault("server.lang", "zh")
	viper.SetDefault("server.start_time", "2024-06-01")   // 项目开始时间（snowflake 纪元）
	viper.SetDefault("server.machine_id", 1)              // 节点默认编号
	viper.SetDefault("server.develop_mode", false)
	viper.SetDefault("server.shutdown_waitting_time", 30) // 收到 SIGINT 信号后，超过 30s，服务器将强制退出

	viper.SetDefault("mysql.host", "127.0.0.1")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.username", "root")
	viper.SetDefault("mysql.password", "123456")
	viper.SetDefault("mysql.database", "novelhub")
	viper.SetDefault("mysql.charset", "utf8mb4")

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.poolsize", 10)
	viper.SetDefault("redis.max_oper_time", 3)

	viper.SetDefault("kafka.enable", false)
	viper.SetDefault("kafka.addr", []string{"127.0.0.1:9092"})
	viper.SetDefault("kafka.partition.like", 6)
	viper.SetDefault("kafka.replication_factor.like", 1)
	viper.SetDefault("kafka.retry.producer", 5)
	viper.SetDefault("kafka.retry.consumer", 5)

	viper.SetDefault("localcache.size", 4096)

	viper.SetDefault("logger.level", 0)
	viper.SetDefault("logger.path", "./logs/novelhub.log")
	viper.SetDefault("logger.max_size", 16)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.compress", false)
	viper.SetDefault("logger.console", true)

	viper.SetDefault("CORF.frontend_path", "*")

	viper.SetDefault("service.token.access_token_expire_duration", 86400)
	viper.SetDefault("service.token.secret", "novelhub")
	viper.SetDefault("service.token.issuer", "novelhub")

	viper.SetDefault("service.interaction.follow_count_expire_time", 60)  // 关注数缓存时间（秒）
	viper.SetDefault("service.interaction.trending_window", 604800)       // 热门小说统计窗口（秒）
	viper.SetDefault("service.interaction.trending_refresh_time", 600)    // 热度窗口清理间隔（秒）

	viper.SetDefault("service.comment.content_max_length", 8192)
	viper.SetDefault("service.comment.write_rate", 64)             // 评论写接口每秒请求数上限
	viper.SetDefault("service.comment.like.remove_interval", 3600) // 空闲点赞 key 清理间隔（秒）
	viper.SetDefault("service.comment.like.expire_time", 86400)    // 点赞 key 逻辑过期时间（秒）

	viper.SetConfigFile(confPath)

	if err := viper.ReadInConfig(); err != nil {
		panic(err.Error())
	}
}
