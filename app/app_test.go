package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/papernu/paper/scrape/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			logger, err := NewLogger(config.LogConfig{Level: "warn", Format: format})
			require.NoError(t, err)
			assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestCommandRunsStage(t *testing.T) {
	var got *Stage
	cmd := NewCommand("probe", "probe", func(ctx context.Context, cmd *cobra.Command, stage *Stage) error {
		got = stage
		return nil
	})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	require.NotNil(t, got)
	assert.Equal(t, 119, got.Config.Registrar.StartId)
}

func TestCommandReturnsStageError(t *testing.T) {
	boom := errors.New("boom")
	cmd := NewCommand("probe", "probe", func(context.Context, *cobra.Command, *Stage) error {
		return boom
	})
	cmd.SetArgs([]string{})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), boom)
}

func TestCommandMissingConfig(t *testing.T) {
	called := false
	cmd := NewCommand("probe", "probe", func(context.Context, *cobra.Command, *Stage) error {
		called = true
		return nil
	})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
	assert.False(t, called)
}
