package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"persona/internal/logging"
	"persona/internal/services"
	"persona/internal/store"
)

// ImageRenderer renders PNG bytes from a prompt pair. Implemented by the
// Stable Diffusion WebUI client.
type ImageRenderer interface {
	Render(ctx context.Context, pair store.PromptPair) ([]byte, error)
}

func (p *Pipeline) runImages(ctx context.Context, renderer ImageRenderer, opts Options) (Summary, error) {
	var summary Summary
	logger := p.logger.With(
		logging.String(logging.FieldStage, string(store.StageImage)),
		logging.String(logging.FieldRunID, uuid.NewString()))

	profiles, err := p.store.SelectPending(ctx, store.StageImage, opts.StartID, opts.Limit)
	if err != nil {
		return summary, err
	}
	summary.Selected = len(profiles)
	logger.Info("image stage starting",
		logging.Int("pending", summary.Selected),
		logging.Bool("dry_run", opts.DryRun))

	delay := time.Duration(p.cfg.Pipeline.ImageDelaySeconds) * time.Second

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		pair := profile.PromptArtifact()
		if !pair.IsComplete() {
			summary.Skipped++
			logger.Warn("skipping profile with incomplete prompts",
				logging.Int64(logging.FieldProfileID, profile.ID))
			continue
		}
		target := p.resolver.Resolve(profile.Category, profile.Subcategory, profile.AdminID, profile.FirstName, profile.LastName)
		if opts.DryRun {
			logger.Info("would render image",
				logging.Int64(logging.FieldProfileID, profile.ID),
				logging.String("name", profile.DisplayName()),
				logging.String("path", target))
			continue
		}

		image, err := renderer.Render(ctx, pair)
		if err != nil {
			summary.Failed++
			logger.Warn("image rendering failed",
				logging.Int64(logging.FieldProfileID, profile.ID),
				logging.String("name", profile.DisplayName()),
				logging.Bool("retryable", services.IsRetryable(err)),
				logging.Error(err))
			if err := sleepFor(ctx, delay); err != nil {
				return summary, err
			}
			continue
		}
		if err := writeImage(target, image); err != nil {
			return summary, err
		}
		if err := p.store.MarkImageDone(ctx, profile.ID, target); err != nil {
			return summary, err
		}
		summary.Processed++
		logger.Info("image saved",
			logging.Int64(logging.FieldProfileID, profile.ID),
			logging.String("path", target))

		if err := sleepFor(ctx, delay); err != nil {
			return summary, err
		}
	}

	logger.Info("image stage finished",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped))
	return summary, nil
}

func writeImage(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare image directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
