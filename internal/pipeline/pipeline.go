package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"persona/internal/config"
	"persona/internal/logging"
	"persona/internal/organizer"
	"persona/internal/store"
)

// Options narrows a generation run. StartID resumes from a stored profile id,
// Limit caps how many profiles are handled (zero or negative means no cap),
// and DryRun reports the selection without calling services or writing state.
type Options struct {
	StartID int64
	Limit   int
	DryRun  bool
}

// Summary reports the outcome of one stage run.
type Summary struct {
	Selected  int
	Processed int
	Failed    int
	Skipped   int
}

// RunSummary combines both stage summaries for a full pipeline run.
type RunSummary struct {
	Prompts Summary
	Images  Summary
}

// Pipeline drives the two generation stages over the profile store. Runs are
// serialized through a file lock so concurrent invocations cannot interleave
// writes.
type Pipeline struct {
	cfg      *config.Config
	store    *store.Store
	resolver organizer.Resolver
	logger   *slog.Logger
}

// New constructs a Pipeline over the given store.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:      cfg,
		store:    st,
		resolver: organizer.NewResolver(cfg.Paths.OutputDir),
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// GeneratePrompts runs the prompt stage over profiles that have no stored
// prompt pair yet.
func (p *Pipeline) GeneratePrompts(ctx context.Context, gen TextGenerator, opts Options) (Summary, error) {
	lock, err := p.acquireLock()
	if err != nil {
		return Summary{}, err
	}
	defer p.releaseLock(lock)
	return p.runPrompts(ctx, gen, opts)
}

// GenerateImages runs the image stage over profiles whose prompts exist but
// whose image has not been rendered.
func (p *Pipeline) GenerateImages(ctx context.Context, renderer ImageRenderer, opts Options) (Summary, error) {
	lock, err := p.acquireLock()
	if err != nil {
		return Summary{}, err
	}
	defer p.releaseLock(lock)
	return p.runImages(ctx, renderer, opts)
}

// Run executes both stages in order under a single lock.
func (p *Pipeline) Run(ctx context.Context, gen TextGenerator, renderer ImageRenderer, opts Options) (RunSummary, error) {
	var run RunSummary
	lock, err := p.acquireLock()
	if err != nil {
		return run, err
	}
	defer p.releaseLock(lock)

	run.Prompts, err = p.runPrompts(ctx, gen, opts)
	if err != nil {
		return run, err
	}
	run.Images, err = p.runImages(ctx, renderer, opts)
	return run, err
}

func (p *Pipeline) acquireLock() (*flock.Flock, error) {
	path := p.cfg.LockPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another generation run is already in progress")
	}
	return lock, nil
}

func (p *Pipeline) releaseLock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		p.logger.Warn("failed to release run lock", logging.Error(err))
	}
}

// sleepFor waits for the configured inter-request delay while honoring
// cancellation.
func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
