package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	t.Run("formats message and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		log.Debug("running command", slog.String("cmd", "cargo test --no-run"), slog.Int("step", 1))

		assert.Equal(t, "DEBUG running command cmd=\"cargo test --no-run\" step=1\n", buf.String())
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

		log.Debug("hidden")
		log.Info("hidden")
		log.Warn("shown")

		assert.Equal(t, "WARN shown\n", buf.String())
	})

	t.Run("handler attributes and groups", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewPrettyHandler(&buf, nil)).With("project", "core").WithGroup("kcov")

		log.Info("instrumented", "run", "core-ab12")

		assert.Equal(t, "INFO instrumented project=core kcov.run=core-ab12\n", buf.String())
	})
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
