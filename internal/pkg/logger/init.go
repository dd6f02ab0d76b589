package logger

import (
	"Bastion/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
)

// LogWriter destination for the gin access log
var LogWriter io.Writer = os.Stdout

// InitLogger installs the default slog logger: JSON to stdout, optionally teed to a TCP sink
func InitLogger() {
	cfg := config.Cfg.Log
	opts := &log.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h log.Handler = log.NewJSONHandler(os.Stdout, opts)

	if cfg.RemoteAddress != "" {
		conn, err := net.Dial("tcp", cfg.RemoteAddress)
		if err != nil {
			log.Warn("remote log sink unreachable, logging to stdout only", "addr", cfg.RemoteAddress, "err", err)
		} else {
			remote := &RemoteFilterHandler{next: log.NewJSONHandler(conn, opts).
				WithAttrs([]log.Attr{log.String("service", "bastion")})}
			h = &TeeHandler{handlers: []log.Handler{h, remote}}
			LogWriter = io.MultiWriter(os.Stdout, conn)
		}
	}

	log.SetDefault(log.New(&ContextHandler{h}))
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
