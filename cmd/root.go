package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"keyout/internal/config"
	"keyout/internal/logging"
	"keyout/internal/tui"
)

var (
	configPath string
	debug      bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "keyout",
	Short: "keyout - batch convert BMP folders to PNG with a transparent key color",
	Long: "keyout converts every .bmp file in a folder to PNG, turning one exact key color " +
		"transparent. Results go to a subfolder of the source; originals are never modified.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $KEYOUT_CONFIG or <user config dir>/keyout/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every converted file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
}

func loadConfig(o config.Overrides) (config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(configPath), o)
	if err != nil {
		return config.Config{}, err
	}
	tui.ApplyPalette(cfg.Colors)
	return cfg, nil
}

// openLogger picks the log destination: --log-file when set, else fallback.
// The returned func closes the file, if any.
func openLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	if logFile != "" {
		logger, f, err := logging.OpenFile(logFile, debug)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logger, func() { _ = f.Close() }, nil
	}
	if fallback == nil {
		return logging.Discard(), func() {}, nil
	}
	return logging.New(fallback, debug), func() {}, nil
}

// statusError shortens engine errors for the terminal. With --debug the full
// chain is kept.
func statusError(err error) error {
	line := tui.StatusLine(err)
	if debug {
		return fmt.Errorf("%s: %w", line, err)
	}
	return errors.New(line)
}
