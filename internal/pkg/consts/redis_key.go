package consts

import "time"

const (
	WsOnlineKey           = "ws:online"
	NotificationUnreadKey = "notification:unread:"
)

const (
	NotificationUnreadTTL = 10 * time.Minute
	WsOnlineTTL           = 90 * time.Second
)

const (
	LikeReconcileLock     = "lock:job:like_reconcile"
	NotificationPurgeLock = "lock:job:notification_purge"
	CVEDigestLock         = "lock:job:cve_digest"
)
