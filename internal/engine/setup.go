package engine

import (
	"context"

	"github.com/robalobadob/wordladder/internal/cache"
	"github.com/robalobadob/wordladder/internal/config"
	"github.com/robalobadob/wordladder/internal/store"
	"github.com/robalobadob/wordladder/internal/words"
)

// FromConfig builds an engine for cfg on top of st, opening the artifact
// cache it names. The returned func closes that cache. The engine is not
// warmed.
func FromConfig(ctx context.Context, cfg config.Config, st store.Store, extra ...Option) (*Engine, func() error, error) {
	artifacts, err := cache.Open(ctx, cfg.CacheBackend, cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}

	src := words.EmbeddedSource()
	if cfg.CorpusFile != "" {
		src = words.FileSource(cfg.CorpusFile)
	}
	opts := []Option{
		WithCorpus(src, cfg.MinFrequency),
		WithArtifactCache(artifacts, cfg.CacheLoadTimeout),
		WithPairTarget(cfg.PairTarget),
		WithDailySalt(cfg.DailySalt),
	}
	return New(cfg.Rules, st, append(opts, extra...)...), artifacts.Close, nil
}
