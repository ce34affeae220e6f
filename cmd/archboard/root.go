package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/config"
	"github.com/revati108/arch-board/internal/entry"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	configPath string
	backendURL string
	jsonOutput bool

	// cfg is loaded before every command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "archboard",
	Short:             "ArchBoard - Hyprland configuration from the terminal",
	Long:              "Read and edit Hyprland, hyprlock and waybar configuration through the ArchBoard backend.",
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (overrides ARCHBOARD_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "",
		"Backend base URL (overrides config and ARCHBOARD_BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")

	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(waybarCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(devserverCmd)

	entry.RegisterDefaults()
}

// setup loads configuration and initializes the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Log))
	slog.Debug("configuration loaded", "backend", cfg.Backend.BaseURL)
	return nil
}

// newLogger writes to stderr so command output stays parseable.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(lc.Level)}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
