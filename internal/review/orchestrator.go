// Package review drives the pipeline: file discovery, the per-file engine
// fan-out, and aggregation into a session.
package review

import (
	"context"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"reviewd/internal/ai"
	"reviewd/internal/analyzer"
	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/rules"
	"reviewd/internal/security"
)

// Orchestrator runs the per-file engines over a selector's output and
// aggregates the results. One orchestrator handles one run at a time.
type Orchestrator struct {
	cfg         *config.Config
	selector    *Selector
	quality     *analyzer.QualityEngine
	performance *analyzer.PerformanceEngine
	security    *security.Scanner
	augmentor   *ai.Augmentor
	log         *zap.Logger
}

// NewOrchestrator wires the engines from the config. augmentor may be nil
// when AI review is disabled.
func NewOrchestrator(cfg *config.Config, registry *rules.Registry, augmentor *ai.Augmentor, log *zap.Logger) *Orchestrator {
	log = logging.OrNop(log)
	return &Orchestrator{
		cfg:         cfg,
		selector:    NewSelector(cfg.Extensions, cfg.Exclude, log),
		quality:     analyzer.NewQualityEngine(cfg.Analysis, registry, log),
		performance: analyzer.NewPerformanceEngine(registry, log),
		security:    security.NewScanner(cfg.Security, registry, log),
		augmentor:   augmentor,
		log:         log,
	}
}

// Run reviews every candidate file under root. The only fatal error is a
// root that cannot be enumerated; everything below discovery level is
// absorbed into per-file results. On cancellation the partial session built
// from completed files is returned.
func (o *Orchestrator) Run(ctx context.Context, root string) (*Session, error) {
	runID := uuid.NewString()
	started := time.Now().UTC()

	paths, err := o.selector.Select(root)
	if err != nil {
		return nil, err
	}
	o.log.Info("review started",
		zap.String("run_id", runID),
		zap.String("path", root),
		zap.Int("candidates", len(paths)))

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	// Slots are indexed by discovery position so the final order never
	// depends on which worker finishes first.
	slots := make([]*FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			slots[i] = o.reviewFile(gctx, path)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures land in slots

	session := &Session{
		RunID:     runID,
		Timestamp: started,
		Path:      root,
		Files:     make([]FileResult, 0, len(paths)),
	}
	for _, result := range slots {
		if result != nil {
			session.Files = append(session.Files, *result)
		}
	}
	session.Finalize()

	o.log.Info("review finished",
		zap.String("run_id", runID),
		zap.Int("files", session.FilesReviewed),
		zap.Int("issues", session.IssuesFound),
		zap.Duration("elapsed", time.Since(started)))
	return session, nil
}

// reviewFile runs all engines on one file in a fixed merge order: quality
// static, quality AI, security static, security AI, performance.
func (o *Orchestrator) reviewFile(ctx context.Context, path string) *FileResult {
	result := &FileResult{
		FilePath: path,
		Language: rules.LanguageFor(path),
		Issues:   []issue.Issue{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		o.log.Warn("unreadable file", zap.String("path", path), zap.Error(err))
		result.Error = err.Error()
		return result
	}
	result.Size = int64(len(data))

	if !utf8.Valid(data) {
		o.log.Warn("skipping binary or non-UTF-8 file", zap.String("path", path))
		result.Error = "file content is not valid UTF-8"
		return result
	}

	content := string(data)
	result.Lines = strings.Count(content, "\n") + 1

	result.Issues = append(result.Issues, o.contained(path, "quality", func() []issue.Issue {
		return o.quality.Analyze(content, result.Language, path)
	})...)
	if o.augmentor != nil && o.augmentor.Enabled() {
		result.Issues = append(result.Issues, o.contained(path, "quality-ai", func() []issue.Issue {
			return o.augmentor.Quality(ctx, content, result.Language, path)
		})...)
	}
	result.Issues = append(result.Issues, o.contained(path, "security", func() []issue.Issue {
		return o.security.Scan(content, result.Language, path)
	})...)
	if o.augmentor != nil && o.augmentor.Enabled() && o.cfg.Security.Enabled {
		result.Issues = append(result.Issues, o.contained(path, "security-ai", func() []issue.Issue {
			return o.augmentor.Security(ctx, content, result.Language, path)
		})...)
	}
	result.Issues = append(result.Issues, o.contained(path, "performance", func() []issue.Issue {
		return o.performance.Analyze(content, result.Language, path)
	})...)

	return result
}

// contained invokes one engine and absorbs a panic into zero issues, so a
// misbehaving rule cannot take down the run.
func (o *Orchestrator) contained(path, engine string, fn func() []issue.Issue) (issues []issue.Issue) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn("engine failure contained",
				zap.String("engine", engine),
				zap.String("path", path),
				zap.Any("panic", r))
			issues = nil
		}
	}()
	return fn()
}
