package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/devserver"
)

var devserverPort int

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run an in-memory backend with a sample desktop config",
	Long:  "Serve the backend API from memory. Nothing is written to disk; every restart starts from the same sample config.",
	Args:  cobra.NoArgs,
	RunE:  runDevserver,
}

func init() {
	devserverCmd.Flags().IntVar(&devserverPort, "port", 0, "Listen port (overrides config and ARCHBOARD_PORT)")
}

func runDevserver(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	state, err := devserver.NewState(devserver.DefaultSeed())
	if err != nil {
		return err
	}

	dc := cfg.DevServer
	if devserverPort != 0 {
		dc.Port = devserverPort
	}
	slog.Info("devserver configured", "port", dc.Port)
	return devserver.Serve(ctx, dc, state)
}
