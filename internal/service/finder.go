package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/cache"
	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/extract"
	"github.com/kitbuilder587/founder-finder/internal/metrics"
)

const responseCacheNamespace = "find"

var ErrNoProvider = errors.New("no search provider available")

// Provider - адаптер поиска профилей (см. internal/provider)
type Provider interface {
	Name() string
	Configured() bool
	Search(ctx context.Context, query string) (string, error)
}

type FinderService interface {
	Find(ctx context.Context, q domain.SearchQuery) (*domain.FindResult, error)
	// ScheduleRefresh перезапрашивает q в фоне и обновляет кеш ответов
	ScheduleRefresh(q domain.SearchQuery)
}

type FinderConfig struct {
	CacheTTL       time.Duration
	RefreshTimeout time.Duration
}

type FinderServiceDeps struct {
	// Paid - платный провайдер, опционален
	Paid      Provider
	Free      Provider
	Cache     cache.Cache
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Config    FinderConfig
	Refresher *Refresher
}

type finderService struct {
	paid      Provider
	free      Provider
	cache     cache.Cache
	logger    *zap.Logger
	metrics   *metrics.Metrics
	config    FinderConfig
	refresher *Refresher
	now       func() time.Time
}

func NewFinderService(deps FinderServiceDeps) FinderService {
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = time.Hour
	}
	if deps.Config.RefreshTimeout == 0 {
		deps.Config.RefreshTimeout = time.Minute
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &finderService{
		paid:      deps.Paid,
		free:      deps.Free,
		cache:     deps.Cache,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		config:    deps.Config,
		refresher: deps.Refresher,
		now:       time.Now,
	}
	if s.refresher == nil {
		s.refresher = NewRefresher(deps.Logger, deps.Metrics)
	}
	return s
}

func (s *finderService) Find(ctx context.Context, q domain.SearchQuery) (*domain.FindResult, error) {
	key := cache.Key(responseCacheNamespace, q.CacheKey())

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if res, ok := cached.(*domain.FindResult); ok {
				s.recordCache(true)
				return res, nil
			}
		}
		s.recordCache(false)
	}

	return s.search(ctx, q)
}

// search идет в провайдеры мимо кеша ответов и перезаписывает запись
func (s *finderService) search(ctx context.Context, q domain.SearchQuery) (*domain.FindResult, error) {
	query := q.String()

	text, providerName, err := s.searchProviders(ctx, query)
	if err != nil {
		return nil, err
	}

	res := &domain.FindResult{
		Profiles: extract.ParseProfiles(text),
		Query:    query,
		Provider: providerName,
		StoredAt: s.now(),
	}

	if s.cache != nil {
		s.cache.Set(cache.Key(responseCacheNamespace, q.CacheKey()), res, s.config.CacheTTL)
	}

	s.logger.Info("founders search done",
		zap.String("query", query),
		zap.String("provider", providerName),
		zap.Int("profiles", len(res.Profiles)),
	)

	return res, nil
}

func (s *finderService) searchProviders(ctx context.Context, query string) (string, string, error) {
	if s.paid != nil && s.paid.Configured() {
		text, err := s.paid.Search(ctx, query)
		if err == nil {
			return text, s.paid.Name(), nil
		}

		s.logger.Warn("paid search failed, falling back to free provider",
			zap.String("provider", s.paid.Name()),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordFallback()
		}
	}

	if s.free == nil {
		return "", "", ErrNoProvider
	}

	text, err := s.free.Search(ctx, query)
	if err != nil {
		return "", "", fmt.Errorf("%s search: %w", s.free.Name(), err)
	}
	return text, s.free.Name(), nil
}

func (s *finderService) ScheduleRefresh(q domain.SearchQuery) {
	s.refresher.Schedule(q.CacheKey(), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
		defer cancel()

		_, err := s.search(ctx, q)
		return err
	})
}

func (s *finderService) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit("response")
	} else {
		s.metrics.RecordCacheMiss("response")
	}
}
