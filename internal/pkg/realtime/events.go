package realtime

// Inbound events
const (
	EventNewPost              = "newPost"
	EventSendComment          = "sendComment"
	EventLikePost             = "likePost"
	EventFollowUpdate         = "followUpdate"
	EventSendMessage          = "sendMessage"
	EventMarkAsRead           = "markAsRead"
	EventTyping               = "typing"
	EventStopTyping           = "stopTyping"
	EventUpdateProfile        = "updateProfile"
	EventDeletePost           = "deletePost"
	EventDeleteComment        = "deleteComment"
	EventMarkNotificationRead = "markNotificationRead"
	EventSubscribe            = "subscribe"
	EventUnsubscribe          = "unsubscribe"
)

// Outbound events
const (
	EventUpdateOnlineUsers      = "updateOnlineUsers"
	EventPostSuccess            = "postSuccess"
	EventNewComment             = "newComment"
	EventCommentSuccess         = "commentSuccess"
	EventNewLike                = "newLike"
	EventNewNotification        = "newNotification"
	EventFollowUpdateSuccess    = "followUpdateSuccess"
	EventMessageSent            = "messageSent"
	EventReceiveMessage         = "receiveMessage"
	EventMessageRead            = "messageRead"
	EventDisplayTyping          = "displayTyping"
	EventHideTyping             = "hideTyping"
	EventProfileUpdated         = "profileUpdated"
	EventProfileUpdateSuccess   = "profileUpdateSuccess"
	EventPostDeleted            = "postDeleted"
	EventCommentDeleted         = "commentDeleted"
	EventNotificationMarkedRead = "notificationMarkedRead"
	EventSubscribed             = "subscribed"
	EventErrorMessage           = "errorMessage"
)
