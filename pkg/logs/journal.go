//go:build !wasm

package logs

import (
	"log/slog"

	slogjournal "github.com/systemd/slog-journal"
)

func newJournalHandler(level slog.Level) (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return journalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)
			return a
		},
	})
}
