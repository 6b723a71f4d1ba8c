package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("HOUSEFLY_LOG_DIR", "/var/log/housefly")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty uses temp dir", raw: "", want: filepath.Join(os.TempDir(), "housefly.log")},
		{name: "blank uses temp dir", raw: "  ", want: filepath.Join(os.TempDir(), "housefly.log")},
		{name: "home dir", raw: "~/housefly.log", want: filepath.Join(home, "housefly.log")},
		{name: "env var", raw: "$HOUSEFLY_LOG_DIR/map.log", want: "/var/log/housefly/map.log"},
		{name: "absolute", raw: "/tmp/dash.log", want: "/tmp/dash.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogFilePath(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogFilePath_Relative(t *testing.T) {
	got, err := LogFilePath("logs/map.log")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "logs", "map.log"), got)
}

func TestLogFilePath_Directory(t *testing.T) {
	_, err := LogFilePath(t.TempDir())
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
