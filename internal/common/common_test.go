package common

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger_RejectsUnknownFormat(t *testing.T) {
	err := SetupLogger(slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	err := NewUserError("view not configured", ErrUnknownView)

	assert.Equal(t, "view not configured: unknown view", err.Error())
	assert.ErrorIs(t, err, ErrUnknownView)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "view not configured", userErr.UserMessage)

	assert.Equal(t, "plain", (&UserError{UserMessage: "plain"}).Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("view %q: %w", "x", ErrUnknownView)))
	assert.True(t, IsNotFound(ErrUnknownLabel))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(ErrInvalidConfig))
}
