package dto

// Socket request payloads

type WsNewPostReq struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	MediaURL    string  `json:"mediaUrl,omitempty"`
	MediaType   string  `json:"mediaType,omitempty"`
	CommunityID *uint64 `json:"communityId,omitempty"`
}

type WsCommentReq struct {
	PostID  uint64 `json:"postId"`
	Content string `json:"content"`
}

type WsPostReq struct {
	PostID uint64 `json:"postId"`
}

type WsCommentRef struct {
	CommentID uint64 `json:"commentId"`
}

type WsFollowReq struct {
	TargetUserID uint64 `json:"targetUserId"`
	Action       string `json:"action,omitempty"`
}

type WsMessageReq struct {
	ReceiverID uint64 `json:"receiverId"`
	Message    string `json:"message"`
}

// WsMarkReadReq marks one message when MessageID is set, otherwise everything from SenderID
type WsMarkReadReq struct {
	MessageID uint64 `json:"messageId,omitempty"`
	SenderID  uint64 `json:"senderId,omitempty"`
}

type WsTypingReq struct {
	ReceiverID uint64 `json:"receiverId"`
}

type WsNotificationReq struct {
	NotificationID uint64 `json:"notificationId"`
}

type WsTopicReq struct {
	Topic string `json:"topic"`
}

// Socket event payloads

type LikeEventDTO struct {
	PostID    uint64 `json:"postId"`
	LikeCount int64  `json:"likeCount"`
}

type CommentEventDTO struct {
	PostID  uint64      `json:"postId"`
	Comment *CommentDTO `json:"comment"`
}

type CommentDeletedDTO struct {
	CommentID uint64 `json:"commentId"`
	PostID    uint64 `json:"postId"`
}

type MessageReadDTO struct {
	MessageID uint64 `json:"messageId"`
}

type TypingDTO struct {
	SenderID uint64 `json:"senderId"`
}

type NotificationReadDTO struct {
	NotificationID uint64 `json:"notificationId"`
	Success        bool   `json:"success"`
}

type ErrorMessageDTO struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}
