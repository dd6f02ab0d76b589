package logger

import (
	log "log/slog"
	"net/http"
	"time"
)

// ESTransport logs elasticsearch round trips
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
	}
	if err != nil {
		log.ErrorContext(req.Context(), "ES request failed", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))
	switch {
	case resp.StatusCode >= 500:
		log.ErrorContext(req.Context(), "ES request error status", fields...)
	case elapsed > 500*time.Millisecond:
		log.WarnContext(req.Context(), "ES request slow", fields...)
	default:
		log.DebugContext(req.Context(), "ES request", fields...)
	}
	return resp, nil
}
