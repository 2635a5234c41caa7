package localcache

import (
	"github.com/bluele/gcache"
	priorityqueue "github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/pkg/errors"
)

// IncrNovelRead 累加小说的阅读热度，返回是否是窗口内的首次计数
func IncrNovelRead(novelID int64, offset int) (bool, error) {
	heat, err := heatCache.Get(novelID)
	if err == nil { // cache hit
		if heat.(int)+offset <= 0 {
			heatCache.Remove(novelID)
		} else {
			heatCache.Set(novelID, heat.(int)+offset)
		}
		return false, nil
	} else if errors.Is(err, gcache.KeyNotFoundError) { // cache miss
		return true, errors.Wrap(heatCache.Set(novelID, offset), "localcache:IncrNovelRead: Set")
	} else {
		return false, errors.Wrap(err, "localcache:IncrNovelRead: Get")
	}
}

func SetNovelReadCreateTime(novelID, timeStamp int64) error {
	return createTimeCache.Set(novelID, timeStamp)
}

// GetTopKNovelIDsByReads 返回热度最高的 k 本小说，热度降序
func GetTopKNovelIDsByReads(k int) ([]int64, error) {
	pq := priorityqueue.NewWith(cmpHeat) // 小根堆

	all := heatCache.GetALL(false)
	for key, value := range all {
		o := heatObj{
			novelID: key.(int64),
			heat:    value.(int),
		}

		// TopK 问题
		if pq.Size() == k {
			t, _ := pq.Peek()
			top := t.(heatObj)
			if o.heat > top.heat {
				pq.Dequeue()
				pq.Enqueue(o)
			}
		} else {
			pq.Enqueue(o)
		}
	}

	tmp := make([]int64, 0, k)
	for {
		o, ok := pq.Dequeue()
		if !ok {
			break
		}
		tmp = append(tmp, o.(heatObj).novelID)
	}

	// 小根堆出队是升序，反转成热度降序
	res := make([]int64, 0, len(tmp))
	for i := len(tmp) - 1; i >= 0; i-- {
		res = append(res, tmp[i])
	}
	return res, nil
}

// RemoveExpiredNovelReads 清掉统计窗口之外的热度
func RemoveExpiredNovelReads(targetTimeStamp int64) {
	all := createTimeCache.GetALL(false)
	for k, v := range all {
		novelID := k.(int64)
		createTime := v.(int64)
		if createTime < targetTimeStamp {
			createTimeCache.Remove(novelID)
			heatCache.Remove(novelID)
		}
	}
}

type heatObj struct {
	novelID int64
	heat    int
}

func cmpHeat(a, b interface{}) int {
	aAsserted := a.(heatObj)
	bAsserted := b.(heatObj)
	switch {
	case aAsserted.heat > bAsserted.heat:
		return 1
	case aAsserted.heat < bAsserted.heat:
		return -1
	default:
		return 0
	}
}
