package handler

import (
	"Bastion/internal/pkg/logger"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/security"
	"context"
	log "log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 64 << 10
)

type WsHandler struct {
	hub      *realtime.Hub
	router   *WsRouter
	upgrader websocket.Upgrader
}

// NewWsHandler an empty origin list or "*" accepts any origin
func NewWsHandler(hub *realtime.Hub, router *WsRouter, allowedOrigins []string) *WsHandler {
	return &WsHandler{
		hub:    hub,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Connect anonymous viewers may connect and receive broadcasts; mutating events need a token
func (s *WsHandler) Connect(c *gin.Context) {
	userID := s.authenticate(c)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WarnContext(c.Request.Context(), "ws upgrade failed", "err", err)
		return
	}

	session := realtime.NewSession(userID)
	ctx, cancel := context.WithCancel(logger.WithTraceID(context.Background(), session.ID))
	defer cancel()

	s.hub.Connect(ctx, session)
	log.InfoContext(ctx, "ws connected", "user_id", userID, "session_id", session.ID)

	go s.writePump(ctx, conn, session)
	s.readPump(ctx, conn, session)

	s.hub.Disconnect(ctx, session)
	log.InfoContext(ctx, "ws disconnected", "user_id", userID, "session_id", session.ID)
}

// authenticate reads ?token= or a bearer header; a bad token downgrades to anonymous
func (s *WsHandler) authenticate(c *gin.Context) uint64 {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		return 0
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.WarnContext(c.Request.Context(), "ws token rejected", "err", err)
		return 0
	}
	return claims.UserID
}

// readPump dispatches events one at a time so actions from one connection never interleave
func (s *WsHandler) readPump(ctx context.Context, conn *websocket.Conn, session *realtime.Session) {
	defer session.Close()

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WarnContext(ctx, "ws read failed", "err", err)
			}
			return
		}
		var env realtime.Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			s.hub.Reply(ctx, session, realtime.EventErrorMessage, wsErrorPayload("Malformed event", wsErrValidation))
			continue
		}
		s.router.Dispatch(ctx, session, env)
	}
}

func (s *WsHandler) writePump(ctx context.Context, conn *websocket.Conn, session *realtime.Session) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case b := <-session.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				log.WarnContext(ctx, "ws write failed", "err", err)
				session.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				session.Close()
				return
			}
		case <-session.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
