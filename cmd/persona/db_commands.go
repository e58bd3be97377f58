package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"persona/internal/config"
	"persona/internal/store"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Profile database utilities",
	}

	dbCmd.AddCommand(newDBInitCommand(ctx))
	dbCmd.AddCommand(newDBResetCommand(ctx))
	dbCmd.AddCommand(newDBStatusCommand(ctx))

	return dbCmd
}

func newDBInitCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the profile database",
		Long: `Init opens the database and applies any pending schema migrations. With
--force the schema is dropped and recreated first, discarding all profiles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				out := cmd.OutOrStdout()
				if force {
					if err := st.Recreate(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintf(out, "Database recreated at %s\n", st.Path())
					return nil
				}
				fmt.Fprintf(out, "Database ready at %s\n", st.Path())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Drop and recreate the schema, discarding all profiles")
	return cmd
}

func newDBResetCommand(ctx *commandContext) *cobra.Command {
	var dropSchema bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset generation state for all profiles",
		Long: `Reset clears the prompt and image status flags and stored artifacts so the
next run regenerates everything. With --drop the entire schema is dropped and
recreated, discarding imported profiles as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				out := cmd.OutOrStdout()
				if dropSchema {
					if err := st.Recreate(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(out, "Database schema dropped and recreated")
					return nil
				}
				affected, err := st.ResetAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared generation state for %d profiles\n", affected)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dropSchema, "drop", false, "Drop and recreate the schema, discarding imported profiles")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive reset")
	return cmd
}

func newDBStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				for _, line := range renderSectionHeader("Pipeline status", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Database", statusInfo, st.Path(), colorize))
				fmt.Fprintln(out, renderStatusLine("Profiles", statusInfo, strconv.Itoa(stats.Total), colorize))
				fmt.Fprintln(out, renderStatusLine("Prompts done", progressKind(stats.Prompts, stats.Total), fmt.Sprintf("%d/%d", stats.Prompts, stats.Total), colorize))
				fmt.Fprintln(out, renderStatusLine("Images done", progressKind(stats.Images, stats.Total), fmt.Sprintf("%d/%d", stats.Images, stats.Total), colorize))

				if len(stats.Categories) == 0 {
					fmt.Fprintln(out, "\nNo profiles imported yet. Run `persona import` first.")
					return nil
				}

				rows := make([][]string, 0, len(stats.Categories))
				for _, cat := range stats.Categories {
					rows = append(rows, []string{
						categoryLabel(cat.Category),
						subcategoryLabel(cat.Subcategory),
						strconv.Itoa(cat.Total),
						strconv.Itoa(cat.Prompts),
						strconv.Itoa(cat.Images),
					})
				}
				footer := []string{"Total", "", strconv.Itoa(stats.Total), strconv.Itoa(stats.Prompts), strconv.Itoa(stats.Images)}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTableWithFooter(
					[]string{"Category", "Subcategory", "Profiles", "Prompts", "Images"},
					rows,
					footer,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func progressKind(done, total int) statusKind {
	switch {
	case total == 0:
		return statusInfo
	case done == total:
		return statusOK
	case done == 0:
		return statusWarn
	default:
		return statusInfo
	}
}
