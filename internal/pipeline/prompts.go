package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"persona/internal/enrichment"
	"persona/internal/logging"
	"persona/internal/services"
	"persona/internal/services/openrouter"
	"persona/internal/store"
)

// TextGenerator produces a prompt pair for one profile. Implemented by the
// OpenRouter client.
type TextGenerator interface {
	GeneratePrompts(ctx context.Context, profile openrouter.ProfileContext) (store.PromptPair, error)
}

func (p *Pipeline) runPrompts(ctx context.Context, gen TextGenerator, opts Options) (Summary, error) {
	var summary Summary
	logger := p.logger.With(
		logging.String(logging.FieldStage, string(store.StagePrompt)),
		logging.String(logging.FieldRunID, uuid.NewString()))

	profiles, err := p.store.SelectPending(ctx, store.StagePrompt, opts.StartID, opts.Limit)
	if err != nil {
		return summary, err
	}
	summary.Selected = len(profiles)
	logger.Info("prompt stage starting",
		logging.Int("pending", summary.Selected),
		logging.Bool("dry_run", opts.DryRun))

	positive := enrichment.PositiveRule()
	negative := enrichment.NegativeRule()
	delay := time.Duration(p.cfg.Pipeline.PromptDelaySeconds) * time.Second

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if opts.DryRun {
			logger.Info("would generate prompts",
				logging.Int64(logging.FieldProfileID, profile.ID),
				logging.String("name", profile.DisplayName()))
			continue
		}

		pair, err := gen.GeneratePrompts(ctx, promptContext(profile))
		if err != nil {
			summary.Failed++
			logger.Warn("prompt generation failed",
				logging.Int64(logging.FieldProfileID, profile.ID),
				logging.String("name", profile.DisplayName()),
				logging.Bool("retryable", services.IsRetryable(err)),
				logging.Error(err))
			if err := sleepFor(ctx, delay); err != nil {
				return summary, err
			}
			continue
		}

		pair.Positive = positive.Apply(pair.Positive)
		pair.Negative = negative.Apply(pair.Negative)
		if err := p.store.MarkPromptDone(ctx, profile.ID, pair); err != nil {
			return summary, err
		}
		summary.Processed++
		logger.Info("prompts stored",
			logging.Int64(logging.FieldProfileID, profile.ID),
			logging.String("name", profile.DisplayName()))

		if err := sleepFor(ctx, delay); err != nil {
			return summary, err
		}
	}

	logger.Info("prompt stage finished",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

func promptContext(profile *store.Profile) openrouter.ProfileContext {
	return openrouter.ProfileContext{
		FirstName:        profile.FirstName,
		LastName:         profile.LastName,
		Category:         profile.Category,
		Subcategory:      profile.Subcategory,
		OrganizationName: profile.OrganizationName,
		OrganizationTown: profile.OrganizationTown,
		Languages:        profile.Languages,
	}
}
