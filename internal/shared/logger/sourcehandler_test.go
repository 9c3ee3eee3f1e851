package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		log        func(l *slog.Logger)
		wantSource bool
	}{
		{
			name:       "info below threshold",
			minLevel:   slog.LevelWarn,
			log:        func(l *slog.Logger) { l.Info("hello") },
			wantSource: false,
		},
		{
			name:       "warn at threshold",
			minLevel:   slog.LevelWarn,
			log:        func(l *slog.Logger) { l.Warn("hello") },
			wantSource: true,
		},
		{
			name:       "error above threshold",
			minLevel:   slog.LevelWarn,
			log:        func(l *slog.Logger) { l.Error("hello") },
			wantSource: true,
		},
		{
			name:       "debug threshold shows info source",
			minLevel:   slog.LevelDebug,
			log:        func(l *slog.Logger) { l.Info("hello") },
			wantSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(slog.New(newSourceHandler(base, tt.minLevel)))

			if tt.wantSource {
				assert.Contains(t, buf.String(), "sourcehandler_test.go")
			} else {
				assert.NotContains(t, buf.String(), "source=")
			}
		})
	}
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := slog.New(newSourceHandler(base, slog.LevelError)).With("project", "demo").WithGroup("issue")

	l.Info("closed", "id", 3)

	assert.Contains(t, buf.String(), "project=demo")
	assert.Contains(t, buf.String(), "issue.id=3")
}
