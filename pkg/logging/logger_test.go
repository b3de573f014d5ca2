package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/metricdocs/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), "warning message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithStage(ctx, "lifecycle")
	ctx = logging.WithCollection(ctx, "bitcoin")
	ctx = logging.WithEntity(ctx, "bitcoin/fees")

	logging.FromContext(ctx).Info().Msg("deleted page")

	testLogger.AssertContains(t, `"stage":"lifecycle"`)
	testLogger.AssertContains(t, `"collection":"bitcoin"`)
	testLogger.AssertContains(t, `"entity":"bitcoin/fees"`)
	testLogger.AssertContains(t, "deleted page")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled deliberately
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfigDiscard(t *testing.T) {
	level := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "error", Output: "discard", Format: "json"})
	assert.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
}
