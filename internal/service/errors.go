package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid           = errors.New("Missing required fields")
	ErrAuthRequired           = errors.New("Authentication required")
	ErrInvalidCredentials     = errors.New("Invalid username or password")
	ErrForbidden              = errors.New("Insufficient permissions")
	ErrUserNotFound           = errors.New("User not found")
	ErrUsernameExist          = errors.New("Username already taken")
	ErrEmailExist             = errors.New("Email already registered")
	ErrPostNotFound           = errors.New("Post not found")
	ErrPostEmpty              = errors.New("Post must contain title or content.")
	ErrPostEditForbidden      = errors.New("Unauthorized to edit this post")
	ErrPostDeleteForbidden    = errors.New("Unauthorized to delete this post")
	ErrCommentNotFound        = errors.New("Comment not found")
	ErrCommentEmpty           = errors.New("Comment content is required")
	ErrCommentDeleteForbidden = errors.New("Unauthorized to delete this comment")
	ErrTargetUserRequired     = errors.New("Target user ID is required")
	ErrFollowSelf             = errors.New("You cannot follow yourself")
	ErrMessageInvalid         = errors.New("Receiver and message are required")
	ErrMessageSelf            = errors.New("You cannot message yourself")
	ErrMessageNotFound        = errors.New("Message not found")
	ErrNotificationNotFound   = errors.New("Notification not found")
	ErrCommunityNotFound      = errors.New("Community not found")
	ErrCommunityNameInvalid   = errors.New("Community name must be 3-30 characters of letters, numbers, _ or -")
	ErrCommunityNameTaken     = errors.New("Community name already exists")
	ErrAlreadyMember          = errors.New("Already a member of this community")
	ErrNotMember              = errors.New("Not a member of this community")
	ErrCreatorCannotLeave     = errors.New("Community creator cannot leave the community")
	ErrCommunityForbidden     = errors.New("Only the community creator or admins can do this")
	ErrCommunityDeleteDenied  = errors.New("Only the community creator can delete the community")
	ErrMemberRoleInvalid      = errors.New("Invalid role")
	ErrCreatorRoleLocked      = errors.New("Cannot change the community creator's role")
	ErrFileNotSupported       = errors.New("Only image files are allowed")
	ErrStorageUnavailable     = errors.New("File storage is not configured")
	ErrAssistantUnavailable   = errors.New("AI assistant is not available")
	UnExpectedError           = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:           BadRequest,
	ErrAuthRequired:           Unauthorized,
	ErrInvalidCredentials:     Unauthorized,
	ErrForbidden:              Forbidden,
	ErrUserNotFound:           NotFound,
	ErrUsernameExist:          BadRequest,
	ErrEmailExist:             BadRequest,
	ErrPostNotFound:           NotFound,
	ErrPostEmpty:              BadRequest,
	ErrPostEditForbidden:      Forbidden,
	ErrPostDeleteForbidden:    Forbidden,
	ErrCommentNotFound:        NotFound,
	ErrCommentEmpty:           BadRequest,
	ErrCommentDeleteForbidden: Forbidden,
	ErrTargetUserRequired:     BadRequest,
	ErrFollowSelf:             BadRequest,
	ErrMessageInvalid:         BadRequest,
	ErrMessageSelf:            BadRequest,
	ErrMessageNotFound:        NotFound,
	ErrNotificationNotFound:   NotFound,
	ErrCommunityNotFound:      NotFound,
	ErrCommunityNameInvalid:   BadRequest,
	ErrCommunityNameTaken:     BadRequest,
	ErrAlreadyMember:          BadRequest,
	ErrNotMember:              BadRequest,
	ErrCreatorCannotLeave:     BadRequest,
	ErrCommunityForbidden:     Forbidden,
	ErrCommunityDeleteDenied:  Forbidden,
	ErrMemberRoleInvalid:      BadRequest,
	ErrCreatorRoleLocked:      BadRequest,
	ErrFileNotSupported:       BadRequest,
	ErrStorageUnavailable:     ServiceUnavailable,
	ErrAssistantUnavailable:   ServiceUnavailable,
	UnExpectedError:           InternalServerError,
}
