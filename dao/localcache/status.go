package localcache

const (
	StatusSuccess = iota + 1
	StatusFailed
)

func SetStatus(key string, status int) {
	statusCache.Set(key, status)
}

func GetStatus(key string) (int, bool) {
	status, err := statusCache.Get(key)
	if err != nil {
		return StatusFailed, false
	}
	s, _ := status.(int)
	return s, true
}

func RemoveStatus(key string) bool {
	return statusCache.Remove(key)
}
