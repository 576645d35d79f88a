package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (and the Telegram bot when TELEGRAM_BOT_TOKEN is set)",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer syncLogger(a.Logger)

	if servePort > 0 {
		a.Config.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("starting founder finder", zap.Int("port", a.Config.Server.Port))

	if err := a.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error("server stopped with error", zap.Error(err))
		return err
	}

	a.Logger.Info("founder finder stopped")
	return nil
}
