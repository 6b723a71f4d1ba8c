package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/config"
	"github.com/Veraticus/housefly/internal/tui"
	"github.com/Veraticus/housefly/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Open the neighborhood map",
		Long: `Open the interactive choropleth of neighborhood profitability.

Hover a neighborhood with the mouse or the arrow keys, then click or press
Enter to see its score breakdown and projections. Logs are written to a
file so they do not disturb the display.`,
		RunE: runMap,
	}

	cmd.Flags().String("log-file", "", "file the dashboard logs to (default: housefly.log in the temp dir)")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-mouse", false, "disable mouse hover and click")

	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("logging.file", cmd.Flags().Lookup("log-file"))

	return cmd
}

func runMap(cmd *cobra.Command, _ []string) error {
	logPath, err := config.LogFilePath(viper.GetString("logging.file"))
	if err != nil {
		return err
	}
	closeLog, err := openLogFile(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}
	if noMouse, _ := cmd.Flags().GetBool("no-mouse"); noMouse {
		cfg.Mouse = false
	}

	common.LogInfo("starting dashboard", common.Fields{
		"api_url": cfg.APIURL,
		"theme":   cfg.Theme,
	})

	return tui.Run(cmd.Context(),
		tui.WithScoring(client),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
		tui.WithTimeout(cfg.Timeout),
		tui.WithMouse(cfg.Mouse),
	)
}

func openLogFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- user supplied log path
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close log file", "error", err)
		}
	}, nil
}
