// Package app wires configuration into the running components.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/founder-finder/internal/agent"
	"github.com/kitbuilder587/founder-finder/internal/cache/memory"
	"github.com/kitbuilder587/founder-finder/internal/config"
	"github.com/kitbuilder587/founder-finder/internal/httpapi"
	"github.com/kitbuilder587/founder-finder/internal/llm/openai"
	"github.com/kitbuilder587/founder-finder/internal/metrics"
	"github.com/kitbuilder587/founder-finder/internal/provider"
	"github.com/kitbuilder587/founder-finder/internal/search/duckduckgo"
	"github.com/kitbuilder587/founder-finder/internal/search/serpapi"
	"github.com/kitbuilder587/founder-finder/internal/service"
	"github.com/kitbuilder587/founder-finder/internal/telegram"
)

type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Cache     *memory.Cache
	Refresher *service.Refresher
	Finder    service.FinderService
	Assistant *agent.Assistant
}

// New собирает граф зависимостей. Сеть не трогает.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// один кеш на процесс, слои разведены префиксами ключей
	c := memory.New(memory.WithMaxEntries(cfg.Cache.MaxEntries))

	free := provider.NewDuckDuckGo(
		duckduckgo.New(duckduckgo.Config{
			BaseURL:   cfg.DuckDuckGo.BaseURL,
			UserAgent: cfg.DuckDuckGo.UserAgent,
			Region:    cfg.DuckDuckGo.Region,
			Timeout:   cfg.DuckDuckGo.Timeout,
		}, logger.Named("duckduckgo")),
		c, cfg.Cache.TTL, cfg.Search.MaxResults, logger.Named("provider"), m,
	)

	paid := provider.NewSerpAPI(
		serpapi.New(serpapi.Config{
			APIKey:  cfg.SerpAPI.APIKey,
			BaseURL: cfg.SerpAPI.BaseURL,
			Timeout: cfg.SerpAPI.Timeout,
		}, logger.Named("serpapi")),
		c, cfg.Cache.TTL, cfg.Search.MaxResults, logger.Named("provider"), m,
	)

	refresher := service.NewRefresher(logger.Named("refresher"), m)

	finder := service.NewFinderService(service.FinderServiceDeps{
		Paid:      paid,
		Free:      free,
		Cache:     c,
		Logger:    logger.Named("finder"),
		Metrics:   m,
		Refresher: refresher,
		Config: service.FinderConfig{
			CacheTTL:       cfg.Cache.TTL,
			RefreshTimeout: cfg.Search.RefreshTimeout,
		},
	})

	llmClient := openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	}, logger.Named("openai"), m)

	logger.Info("providers configured",
		zap.Bool("serpapi", paid.Configured()),
		zap.Bool("openai", llmClient.Configured()),
		zap.Bool("telegram", cfg.TelegramEnabled()),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  reg,
		Metrics:   m,
		Cache:     c,
		Refresher: refresher,
		Finder:    finder,
		Assistant: agent.NewAssistant(finder, llmClient, logger.Named("agent")),
	}
}

func (a *App) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.Config{
		Port:            a.Config.Server.Port,
		ShutdownTimeout: a.Config.Server.ShutdownTimeout,
	}, httpapi.Deps{
		Finder:    a.Finder,
		Assistant: a.Assistant,
		Logger:    a.Logger.Named("http"),
		Metrics:   a.Metrics,
		Gatherer:  a.Registry,
	})
}

// Serve runs the HTTP server and, when configured, the Telegram bot until ctx
// is cancelled or one of them fails.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := a.HTTPServer()
	g.Go(func() error {
		return server.Run(gctx)
	})

	if a.Config.TelegramEnabled() {
		bot, err := telegram.New(telegram.BotConfig{
			Token: a.Config.Telegram.Token,
			Debug: a.Logger.Core().Enabled(zap.DebugLevel),
		}, a.Finder, a.Assistant, a.Logger.Named("telegram"), a.Metrics)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		g.Go(func() error {
			if err := bot.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()
	if serr := a.Refresher.Shutdown(shutdownCtx); serr != nil {
		a.Logger.Warn("background refreshes did not finish", zap.Error(serr))
	}

	return err
}

func (a *App) shutdownTimeout() time.Duration {
	if a.Config.Server.ShutdownTimeout > 0 {
		return a.Config.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
