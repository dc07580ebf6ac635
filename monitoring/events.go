package monitoring

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// APIEvent is one structured line per endpoint outcome.
type APIEvent struct {
	Route   string
	Status  int
	Message string
	Details any
	Meta    map[string]any
}

var (
	mu     sync.RWMutex
	events = newLogger(os.Stdout)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetOutput redirects API event lines. Tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	events = newLogger(w)
}

func level(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status == 0:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LogAPIEvent writes ev as JSON. Status >= 500 logs at error level; a zero
// status marks a warning that is not tied to a response.
func LogAPIEvent(ev APIEvent) {
	mu.RLock()
	l := events
	mu.RUnlock()

	attrs := []slog.Attr{
		slog.String("route", ev.Route),
		slog.Int("status", ev.Status),
	}
	if ev.Details != nil {
		attrs = append(attrs, slog.Any("details", ev.Details))
	}
	if len(ev.Meta) > 0 {
		attrs = append(attrs, slog.Any("meta", ev.Meta))
	}
	l.LogAttrs(context.Background(), level(ev.Status), ev.Message, attrs...)
}
