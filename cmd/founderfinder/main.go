package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/app"
	"github.com/kitbuilder587/founder-finder/internal/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "founderfinder",
	Short: "Find founders and other people on LinkedIn by domain and location",
	Long: `founderfinder searches LinkedIn profiles through a paid search API (SerpAPI)
when a key is configured, falling back to DuckDuckGo otherwise.

Configuration is read from environment variables; a .env file in the working
directory is loaded first when present.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp читает .env и окружение и собирает приложение
func loadApp() (*app.App, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return app.New(cfg, logger), nil
}

func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
