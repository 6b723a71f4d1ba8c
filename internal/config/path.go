package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/housefly/internal/common"
)

// LogFileName is the dashboard log written under the temp dir by default.
const LogFileName = "housefly.log"

// DefaultLogFile returns where the dashboard logs when no file is configured.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), LogFileName)
}

// LogFilePath resolves the configured dashboard log file. An empty value
// selects DefaultLogFile; a leading ~ and $VARs are expanded. The result is
// absolute and must not name a directory.
func LogFilePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLogFile(), nil
	}

	path, err := filepath.Abs(expandHome(os.ExpandEnv(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: log file %q: %w", common.ErrInvalidConfig, raw, err)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: log file %q is a directory", common.ErrInvalidConfig, raw)
	}
	return path, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
