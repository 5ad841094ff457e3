// Package runlog appends one journal line per event of a run to a
// plain-text file, timestamped in the configured zone.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// TimeLayout is the journal timestamp format.
const TimeLayout = "2006-01-02 15:04:05 MST"

// Open appends to the journal at path. The returned closer releases the file.
func Open(path string, loc *time.Location) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // operator-configured path
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}
	return New(f, loc), f, nil
}

// New returns a journal logger writing to w.
func New(w io.Writer, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String(slog.TimeKey, a.Value.Time().In(loc).Format(TimeLayout))
			case slog.LevelKey:
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a journal that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
