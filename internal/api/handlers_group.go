package api

import "Bastion/internal/api/handler"

// HandlersGroup every initialised handler the router mounts
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	UserFollowHandler   *handler.UserFollowHandler
	PostHandler         *handler.PostHandler
	MessageHandler      *handler.MessageHandler
	NotificationHandler *handler.NotificationHandler
	CommunityHandler    *handler.CommunityHandler
	SearchHandler       *handler.SearchHandler
	AgentHandler        *handler.AgentHandler
	WsHandler           *handler.WsHandler
}
