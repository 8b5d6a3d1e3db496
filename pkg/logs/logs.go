// Package logs builds the process logger: a terminal handler on stderr,
// fanned out to the systemd journal when asked to.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	Writer  io.Writer // defaults to os.Stderr
	Format  string    // "text" (default) or "json"
	Verbose bool      // debug level
	Quiet   bool      // error level; wins over Verbose
	Journal bool      // also send records to the systemd journal
}

// Level maps the verbosity flags to a level. The default is warn.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Verbose:
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New returns the logger described by opts. A journal that cannot be
// reached is reported on the terminal handler and otherwise ignored.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level()}

	var terminal slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		terminal = slog.NewTextHandler(w, handlerOpts)
	case "json":
		terminal = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", opts.Format)
	}

	if !opts.Journal {
		return slog.New(terminal), nil
	}

	journal, err := newJournalHandler(opts.Level())
	if err != nil {
		record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
		record.Add("error", err)
		_ = terminal.Handle(context.Background(), record)
		return slog.New(terminal), nil
	}
	return slog.New(slogmulti.Fanout(terminal, journal)), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// journalKey turns an attribute key into a valid journal field name.
func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}
