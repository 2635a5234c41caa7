package testutil

import (
	"fmt"
	"sync"
	"testing"

	"novelhub/dao/localcache"
	"novelhub/dao/mysql"
	daoredis "novelhub/dao/redis"
	"novelhub/internal/utils"
	"novelhub/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var initOnce sync.Once

// 测试进程内只初始化一次的全局设施
func InitEnv() {
	initOnce.Do(func() {
		viper.Set("server.lang", "zh")
		viper.Set("server.start_time", "2024-06-01")
		viper.Set("server.machine_id", 1)
		viper.Set("logger.console", false)
		viper.Set("service.token.access_token_expire_duration", 86400)
		viper.Set("service.token.secret", "novelhub-test")
		viper.Set("service.token.issuer", "novelhub-test")
		viper.Set("localcache.size", 4096)

		logger.InitLogger()
		localcache.InitLocalCache()
		utils.InitSnowflake()
		utils.InitTrans()
		utils.InitToken()
	})
}

// SetupTestDB 用 sqlite 内存库替换 mysql 连接，每个测试一个独立的库
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	InitEnv()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	mysql.SetDB(db)
	mysql.InitTables(db)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// ResetLocalCache 清空进程级的 localcache
func ResetLocalCache() {
	localcache.InitLocalCache()
}

// SetupTestRedis 用 miniredis 替换 redis 连接
func SetupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	InitEnv()

	mr := miniredis.RunT(t)
	viper.Set("redis.host", mr.Host())
	viper.Set("redis.port", mr.Port())
	viper.Set("redis.password", "")
	viper.Set("redis.db", 0)
	viper.Set("redis.poolsize", 10)
	viper.Set("redis.max_oper_time", 3)
	viper.Set("service.interaction.follow_count_expire_time", 60)

	daoredis.InitRedis()
	return mr
}
