package consts

const (
	SessionKeyPrefix = "sessionKey:"
	PostTop10Key     = "post:top10"
)

const (
	PostTop10Lock    = "lock:post:top10"
	ImageCleanupLock = "lock:image:cleanup"
)
