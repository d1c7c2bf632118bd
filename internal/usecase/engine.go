package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"codechat/config"
	"codechat/internal/adapter/analyzer"
	"codechat/internal/adapter/cache"
	"codechat/internal/adapter/classifier"
	"codechat/internal/adapter/fs"
	"codechat/internal/adapter/knowledge"
	"codechat/internal/adapter/lexicon"
	"codechat/internal/adapter/matcher"
	"codechat/internal/port"

	"github.com/rs/zerolog"
)

// EngineOptions carries start-up settings that are not part of the config file.
type EngineOptions struct {
	// RootDir resolves relative knowledge and data directories.
	RootDir string
	// Progress receives the lexicon download progress bar; nil disables it.
	Progress     io.Writer
	ForceLexicon bool
}

// Engine bundles the read-only components built once at start-up.
type Engine struct {
	Config     *config.Config
	Lexicon    *lexicon.Lexicon
	Knowledge  *knowledge.Base
	Normalizer *analyzer.Normalizer
	Classifier *classifier.Classifier
	Resolver   *Resolver
}

// NewEngine provisions the lexicon, loads the knowledge base, trains the
// fallback classifier and wires the resolution cascade.
func NewEngine(ctx context.Context, cfg *config.Config, opts EngineOptions, logger zerolog.Logger) (*Engine, error) {
	start := time.Now()

	prov, err := lexicon.Provision(ctx, lexicon.Options{
		Source:   cfg.Lexicon.Source,
		DataDir:  cfg.DataDir(opts.RootDir),
		Force:    opts.ForceLexicon,
		Timeout:  cfg.Lexicon.Timeout,
		Progress: opts.Progress,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	lemmas, exceptions := prov.Lexicon.Size()
	logger.Info().
		Int("lemmas", lemmas).
		Int("exceptions", exceptions).
		Bool("fetched", prov.Fetched).
		Msg("lexicon ready")

	kb, err := LoadKnowledge(cfg, opts.RootDir)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("topics", len(kb.Topics)).
		Int("languages", len(kb.Languages)).
		Int("comparisons", len(kb.Comparisons)).
		Msg("knowledge base loaded")
	for _, sh := range kb.Shadows() {
		logger.Warn().
			Str("topic", sh.TopicID).
			Str("pattern", sh.Pattern).
			Str("shadowed_by", sh.ByTopic).
			Msgf("trigger phrase contains %q and is never reached by keyword matching", sh.ByPhrase)
	}

	norm := analyzer.NewNormalizer(prov.Lexicon)

	cc := cfg.Classifier
	clf, err := classifier.Train(kb.TrainingExamples(norm.Normalize), norm, classifier.Options{
		NgramMin:   cc.NgramMin,
		NgramMax:   cc.NgramMax,
		MaxIter:    cc.MaxIter,
		Tolerance:  cc.Tolerance,
		C:          cc.C,
		MultiClass: cc.MultiClass,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}
	stats := clf.Stats()
	logger.Info().
		Int("classes", len(clf.Classes())).
		Int("vocabulary", clf.VocabularySize()).
		Int("iterations", stats.Iterations).
		Float64("loss", stats.Loss).
		Bool("converged", stats.Converged).
		Msg("classifier trained")

	var fallback port.Classifier = clf
	if cc.CacheSize > 0 {
		fallback = cache.NewCachedClassifier(clf, cache.NewPredictionCache(cc.CacheSize, cc.CacheTTL))
	}

	picker := matcher.NewPicker(cfg.Resolver.Seed)
	matchers := []port.Matcher{
		matcher.NewComparisonMatcher(kb.Comparisons),
		matcher.NewLanguageMatcher(kb.Languages),
		matcher.NewIntentMatcher(kb.Topics, picker),
	}

	resolver := NewResolver(matchers, fallback, kb.Topics, picker, ResolverOptions{
		Threshold:      cc.ConfidenceThreshold,
		DefaultMessage: cfg.Resolver.DefaultMessage,
	}, logger)

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("engine ready")

	return &Engine{
		Config:     cfg,
		Lexicon:    prov.Lexicon,
		Knowledge:  kb,
		Normalizer: norm,
		Classifier: clf,
		Resolver:   resolver,
	}, nil
}

// LoadKnowledge loads the knowledge base sources named in cfg. A relative
// knowledge directory resolves against rootDir.
func LoadKnowledge(cfg *config.Config, rootDir string) (*knowledge.Base, error) {
	kbOpts := knowledge.Options{Embedded: cfg.Knowledge.Embedded}
	if cfg.Knowledge.Dir != "" {
		kbOpts.Dir = cfg.Knowledge.Dir
		if !filepath.IsAbs(kbOpts.Dir) {
			kbOpts.Dir = filepath.Join(rootDir, kbOpts.Dir)
		}
		kbOpts.Walker = fs.NewWalker(cfg.Knowledge.Includes, cfg.Knowledge.Excludes)
	}
	kb, err := knowledge.Load(kbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	return kb, nil
}
