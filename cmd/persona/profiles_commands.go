package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"persona/internal/config"
	"persona/internal/store"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect imported profiles",
	}

	profilesCmd.AddCommand(newProfilesListCommand(ctx))
	profilesCmd.AddCommand(newProfilesShowCommand(ctx))

	return profilesCmd
}

func newProfilesListCommand(ctx *commandContext) *cobra.Command {
	var category string
	var subcategory string
	var pending string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles, optionally filtered by partition or pending stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				filter := store.Filter{Category: strings.TrimSpace(category)}
				if cmd.Flags().Changed("subcategory") {
					value := strings.TrimSpace(subcategory)
					filter.Subcategory = &value
				}
				if pending != "" {
					stage, ok := store.ParseStage(pending)
					if !ok {
						return fmt.Errorf("unknown stage %q (expected prompt or image)", pending)
					}
					filter.PendingStage = stage
				}

				profiles, err := st.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(profiles) == 0 {
					fmt.Fprintln(out, "No profiles match the filter.")
					return nil
				}

				rows := make([][]string, 0, len(profiles))
				for _, profile := range profiles {
					rows = append(rows, []string{
						strconv.FormatInt(profile.ID, 10),
						strconv.FormatInt(profile.AdminID, 10),
						profile.DisplayName(),
						categoryLabel(profile.Category),
						subcategoryLabel(profile.Subcategory),
						yesNo(profile.PromptGenerated),
						yesNo(profile.ImageGenerated),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Admin", "Name", "Category", "Subcategory", "Prompts", "Image"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintf(out, "%d profiles\n", len(profiles))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list profiles in this category")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "Only list profiles in this subcategory (empty matches uncategorized)")
	cmd.Flags().StringVar(&pending, "pending", "", "Only list profiles pending the given stage (prompt or image)")
	return cmd
}

func newProfilesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one profile in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid profile id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				profile, err := st.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				for _, line := range renderSectionHeader(profile.DisplayName(), colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Profile id", statusInfo, strconv.FormatInt(profile.ID, 10), colorize))
				fmt.Fprintln(out, renderStatusLine("Admin id", statusInfo, strconv.FormatInt(profile.AdminID, 10), colorize))
				fmt.Fprintln(out, renderStatusLine("Category", statusInfo, categoryLabel(profile.Category), colorize))
				fmt.Fprintln(out, renderStatusLine("Subcategory", statusInfo, subcategoryLabel(profile.Subcategory), colorize))
				fmt.Fprintln(out, renderStatusLine("Organization", statusInfo, emptyDash(profile.OrganizationName), colorize))
				fmt.Fprintln(out, renderStatusLine("Town", statusInfo, emptyDash(profile.OrganizationTown), colorize))
				fmt.Fprintln(out, renderStatusLine("Email", statusInfo, emptyDash(profile.Email), colorize))
				fmt.Fprintln(out, renderStatusLine("Phone", statusInfo, emptyDash(profile.Phone), colorize))
				fmt.Fprintln(out, renderStatusLine("Languages", statusInfo, emptyDash(profile.Languages), colorize))
				fmt.Fprintln(out, renderStatusLine("Source file", statusInfo, profile.SourceFile, colorize))
				fmt.Fprintln(out, renderStatusLine("Prompts", boolKind(profile.PromptGenerated), yesNo(profile.PromptGenerated), colorize))
				fmt.Fprintln(out, renderStatusLine("Image", boolKind(profile.ImageGenerated), yesNo(profile.ImageGenerated), colorize))
				if profile.ImagePath != "" {
					fmt.Fprintln(out, renderStatusLine("Image path", statusInfo, profile.ImagePath, colorize))
				}

				if profile.PromptGenerated {
					fmt.Fprintln(out)
					fmt.Fprintf(out, "Positive prompt:\n  %s\n", profile.PositivePrompt)
					fmt.Fprintf(out, "Negative prompt:\n  %s\n", profile.NegativePrompt)
				}
				return nil
			})
		},
	}
}

func boolKind(done bool) statusKind {
	if done {
		return statusOK
	}
	return statusWarn
}

func emptyDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
