// Package app assembles the loaders and services from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/platform/cache"
	"github.com/p-n-ai/pai-prep/internal/platform/config"
	"github.com/p-n-ai/pai-prep/internal/quiz"
	"github.com/p-n-ai/pai-prep/internal/roadmap"
	"github.com/p-n-ai/pai-prep/internal/schedule"
	"github.com/p-n-ai/pai-prep/internal/validate"
)

// App holds the wired services.
type App struct {
	Roadmap   *roadmap.Loader
	Corpus    *corpus.Loader
	Policy    schedule.Policy
	Quiz      *quiz.Service
	Validator *validate.Validator

	cache *cache.Cache
}

// New builds the services described by cfg. When the cache is enabled it
// connects to redis; callers must Close the App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	policy, err := schedule.LoadPolicy(cfg.Schedule.PolicyPath)
	if err != nil {
		return nil, err
	}

	a := &App{Policy: policy}

	var corpusCache corpus.Cache = corpus.NewMemoryCache()
	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting cache: %w", err)
		}
		a.cache = c
		corpusCache = corpus.NewStoreCache(c, cfg.Cache.TTL)
		slog.Info("corpus cache enabled", "ttl", cfg.Cache.TTL)
	}

	a.Roadmap = roadmap.NewLoader(cfg.Content.ScheduleDir)
	a.Corpus = corpus.NewLoader(cfg.Content.CorpusRoot, corpusCache)
	a.Quiz = quiz.NewService(quiz.Config{
		Roadmap: a.Roadmap,
		Corpus:  a.Corpus,
		Policy:  policy,
	})
	a.Validator = validate.New(a.Roadmap, a.Corpus, policy, validate.Options{
		Days:      cfg.Schedule.Days,
		MinTopics: cfg.Schedule.MinTopics,
	})
	slog.Info("content configured",
		"schedule_dir", cfg.Content.ScheduleDir,
		"corpus_root", a.Corpus.Root(),
		"days", cfg.Schedule.Days,
	)
	return a, nil
}

// Ready reports whether external dependencies are reachable.
func (a *App) Ready(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.HealthCheck(ctx)
}

// Close releases external connections.
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
