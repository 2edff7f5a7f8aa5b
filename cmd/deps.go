package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/advice"
	"github.com/abhisek/edupath/internal/llm"
	"github.com/abhisek/edupath/internal/logger"
	"github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/store"
)

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog() (*quiz.Catalog, error) {
	if cfg == nil || cfg.Catalog.Path == "" {
		return quiz.Default(), nil
	}
	return quiz.Load(cfg.Catalog.Path)
}

// loadEngine builds the engine from the configured catalog and scoring
// table, falling back to the built-in ones.
func loadEngine() (*recommend.Engine, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	engCfg := recommend.DefaultConfig()
	if cfg != nil && cfg.Engine.Path != "" {
		if engCfg, err = recommend.LoadConfig(cfg.Engine.Path); err != nil {
			return nil, err
		}
	}
	eng, err := recommend.New(engCfg, catalog)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return eng, nil
}

// newProvider builds the LLM provider from config and the environment.
// It returns llm.ErrNotConfigured when no provider is selected.
func newProvider(ctx context.Context, eventRepo store.EventRepo) (llm.Provider, error) {
	var o llm.Overrides
	if cfg != nil {
		o = llm.Overrides{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Timeout:  cfg.LLM.Timeout,
		}
	}
	llmCfg, ok := llm.Resolve(o)
	if !ok {
		return nil, llm.ErrNotConfigured
	}
	return llm.NewProvider(ctx, llmCfg, eventRepo, logger.Named("llm"))
}

// buildAdvisor returns an LLM-backed advisor when a provider is available,
// and the keyword responder otherwise. status describes which one answers.
func buildAdvisor(ctx context.Context, eventRepo store.EventRepo) (adv advice.Advisor, status string, offline bool) {
	rules := advice.NewDefaultResponder()
	provider, err := newProvider(ctx, eventRepo)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			logger.Get().Warn("llm provider unavailable, using rules", zap.Error(err))
		}
		return rules, "EduBot: offline", true
	}
	log := logger.Named("advice")
	log.Info("llm advisor enabled", zap.String("provider", llm.ProviderName(provider)), zap.String("model", provider.ModelID()))
	return advice.NewLLMAdvisor(provider, rules, advice.DefaultLLMAdvisorConfig(), log),
		"EduBot: " + provider.ModelID(), false
}
