// Package testutil provides helpers shared by sqlserde tests.
package testutil

import (
	"log/slog"
	"testing"

	"github.com/leapstack-labs/sqlserde/pkg/plugin"
)

// NewTestLogger returns a debug-level logger that writes to t.Log, so
// output only shows for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// NewTestPlugin returns a default plugin logging through NewTestLogger.
func NewTestPlugin(t testing.TB) *plugin.Plugin {
	t.Helper()
	return plugin.New(plugin.WithLogger(NewTestLogger(t)))
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
