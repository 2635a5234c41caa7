package workers

import "sync"

var wg sync.WaitGroup

func InitWorkers() {
	RemoveIdleCommentLikeKeys(&wg)
	RemoveExpiredNovelReads(&wg)
}

func Wait() {
	wg.Wait()
}
