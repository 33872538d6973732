package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessassist/internal/logger"
)

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logger.Level
		known bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" Error ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
		{"", logger.INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
	assert.False(t, log.Enabled(logger.DEBUG))
	assert.True(t, log.Enabled(logger.ERROR))
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("chesscom").
		WithFields(map[string]any{"username": "hikaru", "month": "2024/05"}).
		WithField("attempt", 1)

	log.Info("fetched")

	out := buf.String()
	assert.Contains(t, out, "[chesscom]")
	assert.Contains(t, out, "fetched attempt=1 month=2024/05 username=hikaru")
}

func TestContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithField("request_id", "abc")

	ctx := logger.NewContext(context.Background(), log)
	logger.FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestLogger_DerivedLoggersKeepParentFields(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithField("username", "alice")
	child := parent.WithPrefix("services").WithField("game", 7)

	parent.Info("parent")
	child.Info("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "parent username=alice"))
	assert.NotContains(t, lines[0], "[services]")
	assert.Contains(t, lines[1], "[services]")
	assert.True(t, strings.HasSuffix(lines[1], "child game=7 username=alice"))
}

func TestLogger_ColoursLevelColumn(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.WithOutput(&buf)).Error("boom")
	assert.Contains(t, buf.String(), "\033[31mERROR\033[0m")
}
