package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"persona/internal/config"
	"persona/internal/pipeline"
	"persona/internal/services/openrouter"
	"persona/internal/services/sdwebui"
	"persona/internal/store"
)

type generateFlags struct {
	startID int64
	limit   int
	dryRun  bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.startID, "start-from", 0, "Resume from the given profile id")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Process at most N profiles (0 means no limit)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "List the selection without calling services or writing state")
}

func (f *generateFlags) options() pipeline.Options {
	return pipeline.Options{StartID: f.startID, Limit: f.limit, DryRun: f.dryRun}
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Run individual generation stages",
	}

	generateCmd.AddCommand(newGeneratePromptsCommand(ctx))
	generateCmd.AddCommand(newGenerateImagesCommand(ctx))

	return generateCmd
}

func newGeneratePromptsCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Generate prompt pairs for profiles without prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if !flags.dryRun {
					if err := cfg.RequireLLMCredentials(); err != nil {
						return err
					}
				}
				summary, err := pipeline.New(cfg, st, logger).GeneratePrompts(
					cmd.Context(),
					openrouter.NewClient(cfg.LLM),
					flags.options(),
				)
				printStageSummary(cmd, "Prompt", summary, flags.dryRun)
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newGenerateImagesCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Render images for profiles with prompts but no image",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if !flags.dryRun {
					if err := cfg.RequireRenderCheckpoint(); err != nil {
						return err
					}
				}
				summary, err := pipeline.New(cfg, st, logger).GenerateImages(
					cmd.Context(),
					sdwebui.NewClient(cfg.Render),
					flags.options(),
				)
				printStageSummary(cmd, "Image", summary, flags.dryRun)
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both generation stages in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if !flags.dryRun {
					if err := cfg.RequireLLMCredentials(); err != nil {
						return err
					}
					if err := cfg.RequireRenderCheckpoint(); err != nil {
						return err
					}
				}
				run, err := pipeline.New(cfg, st, logger).Run(
					cmd.Context(),
					openrouter.NewClient(cfg.LLM),
					sdwebui.NewClient(cfg.Render),
					flags.options(),
				)
				printStageSummary(cmd, "Prompt", run.Prompts, flags.dryRun)
				printStageSummary(cmd, "Image", run.Images, flags.dryRun)
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func printStageSummary(cmd *cobra.Command, stage string, summary pipeline.Summary, dryRun bool) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "%s stage (dry run): %d pending\n", stage, summary.Selected)
		return
	}
	fmt.Fprintf(out, "%s stage: %d selected, %d processed, %d failed", stage, summary.Selected, summary.Processed, summary.Failed)
	if summary.Skipped > 0 {
		fmt.Fprintf(out, ", %d skipped", summary.Skipped)
	}
	fmt.Fprintln(out)
}
