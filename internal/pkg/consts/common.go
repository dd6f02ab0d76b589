package consts

const (
	MimePrefixImage = "image"
)

const (
	// AvatarSize edge length in pixels of stored avatars
	AvatarSize = 256
	// MaxUploadBytes upload cap for avatars and post media
	MaxUploadBytes = 5 << 20
)

const (
	FeedPageSize        = 20
	MaxPageSize         = 100
	NotificationListCap = 50
	SearchResultCap     = 50
	ModerationQueueCap  = 50
	ThreadPageSize      = 200
)
