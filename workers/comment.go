package workers

import (
	"strconv"
	"sync"
	"time"

	"novelhub/dao/redis"
	"novelhub/internal/utils"
	"novelhub/logger"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/viper"
)

// RemoveIdleCommentLikeKeys 清理长时间没有访问的点赞缓存
// db 的 mapping 表始终是真相，key 被清理后下次访问会重建
func RemoveIdleCommentLikeKeys(wg *sync.WaitGroup) {
	removeInterval := time.Second * time.Duration(viper.GetInt64("service.comment.like.remove_interval"))
	expireTime := time.Second * time.Duration(viper.GetInt64("service.comment.like.expire_time"))
	waitTime := 0 * time.Second

	pool, _ := ants.NewPoolWithFunc(4096, func(i interface{}) {
		commentID, ok := i.(int64)
		if !ok {
			return
		}
		if err := redis.DelCommentLikeKeysByCommentIDs([]int64{commentID}); err != nil {
			logger.Errorf("workers:RemoveIdleCommentLikeKeys: DelCommentLikeKeysByCommentIDs failed, reason: %v", err.Error())
		}
	})

	go func() {
		for {
			time.Sleep(waitTime)
			wg.Add(1)

			keys, err := redis.GetKeys(redis.KeyCommentLikeSetPF + "*")
			if !checkError(err, &waitTime, wg) {
				continue
			}

			// 筛选逻辑过期的 key
			expiredKeys, err := getExpiredKeys(keys, expireTime)
			if !checkError(err, &waitTime, wg) {
				continue
			}
			if len(expiredKeys) == 0 {
				waitTime = removeInterval
				wg.Done()
				continue
			}

			for i := 0; i < len(expiredKeys); i++ {
				commentIDStr := utils.Substr(expiredKeys[i], len(redis.KeyCommentLikeSetPF), len(expiredKeys[i]))
				commentID, err := strconv.ParseInt(commentIDStr, 10, 64)
				if err != nil {
					continue
				}
				pool.Invoke(commentID) // 添加到 go routine 池
			}

			logger.Infof("workers:RemoveIdleCommentLikeKeys: Removed %d pieces of idle like data from Redis", len(expiredKeys))

			waitTime = removeInterval
			wg.Done()
		}
	}()
}
