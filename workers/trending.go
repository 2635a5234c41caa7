package workers

import (
	"sync"
	"time"

	"novelhub/dao/localcache"

	"github.com/spf13/viper"
)

// RemoveExpiredNovelReads 清掉统计窗口之外的阅读热度
func RemoveExpiredNovelReads(wg *sync.WaitGroup) {
	refreshTime := time.Second * time.Duration(viper.GetInt64("service.interaction.trending_refresh_time"))
	window := viper.GetInt64("service.interaction.trending_window")

	go func() {
		for {
			wg.Add(1)

			targetTimeStamp := time.Now().Unix() - window
			localcache.RemoveExpiredNovelReads(targetTimeStamp)

			wg.Done()
			time.Sleep(refreshTime)
		}
	}()
}
