package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"persona/internal/config"
	"persona/internal/importer"
	"persona/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import administrator profiles from the data directory",
		Long: `Import walks the data directory and loads every JSON export into the
profile database. The directory layout determines the partition:
data/<category>/<subcategory>/file.json, with the subcategory level optional.
Re-running an import never duplicates or modifies existing profiles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				root := strings.TrimSpace(dataDir)
				if root == "" {
					root = cfg.Paths.DataDir
				}

				summary, err := importer.New(st, logger).Run(cmd.Context(), root)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Files processed:  %d\n", summary.FilesProcessed)
				if summary.FilesSkipped > 0 {
					fmt.Fprintf(out, "Files skipped:    %d\n", summary.FilesSkipped)
				}
				fmt.Fprintf(out, "Profiles added:   %d\n", summary.Inserted)
				fmt.Fprintf(out, "Duplicates:       %d\n", summary.Duplicates)
				if summary.Invalid > 0 {
					fmt.Fprintf(out, "Invalid records:  %d\n", summary.Invalid)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Override the configured data directory")
	return cmd
}
