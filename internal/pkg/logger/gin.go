package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id,omitempty"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
	IP      string `json:"client_ip"`
}

// SetupGin installs the JSON access log and panic recovery
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/healthz"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if id, ok := p.Keys[TraceIDKey].(string); ok {
				traceID = id
			} else if p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}
			b, _ := json.Marshal(accessLine{
				Time:    p.TimeStamp.Format(time.RFC3339),
				Level:   "INFO",
				Msg:     "HTTP_ACCESS",
				TraceID: traceID,
				Method:  p.Method,
				Path:    p.Path,
				Status:  p.StatusCode,
				Latency: p.Latency.String(),
				IP:      p.ClientIP,
			})
			return string(b) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
