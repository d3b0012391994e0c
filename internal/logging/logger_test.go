package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, options(slog.LevelInfo)))

	log.Info("copy failed", "error", "no clipboard")
	assert.Contains(t, buf.String(), `err="no clipboard"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestOptions_Level(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, options(slog.LevelInfo)))

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(true))
	assert.Equal(t, slog.LevelInfo, Level(false))
}
