package localcache

import (
	"github.com/bluele/gcache"
	"github.com/spf13/viper"
)

var statusCache gcache.Cache     // kafka 消息消费状态
var heatCache gcache.Cache       // novel_id -> 窗口内阅读次数
var createTimeCache gcache.Cache // novel_id -> 首次计数时间戳

func InitLocalCache() {
	size := viper.GetInt("localcache.size")
	statusCache = gcache.New(size).LRU().Build()
	heatCache = gcache.New(size).LRU().Build()
	createTimeCache = gcache.New(size).LRU().Build()
}
