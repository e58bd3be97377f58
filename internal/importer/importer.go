package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"persona/internal/logging"
	"persona/internal/store"
)

// UncategorizedDir labels profiles imported from files sitting directly in
// the data root rather than inside a category directory.
const UncategorizedDir = "uncategorized"

// Summary reports the outcome of one import pass.
type Summary struct {
	FilesProcessed int
	FilesSkipped   int
	Inserted       int
	Duplicates     int
	Invalid        int
}

// Importer walks a category-organized data directory and loads administrator
// profiles into the store.
type Importer struct {
	store  *store.Store
	logger *slog.Logger
}

// New constructs an Importer backed by the given store.
func New(st *store.Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{store: st, logger: logging.NewComponentLogger(logger, "importer")}
}

// Run imports every .json file under root. The directory layout determines
// the partition: root/<category>/<subcategory>/file.json, with the
// subcategory level optional. Files that cannot be read or parsed are logged
// and skipped; only a missing root directory aborts the run.
func (i *Importer) Run(ctx context.Context, root string) (Summary, error) {
	var summary Summary
	info, err := os.Stat(root)
	if err != nil {
		return summary, fmt.Errorf("importer: data directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("importer: %s is not a directory", root)
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			return nil
		}
		category, subcategory := partitionFor(root, path)
		if err := i.importFile(ctx, path, category, subcategory, &summary); err != nil {
			summary.FilesSkipped++
			i.logger.Warn("skipping unreadable file",
				logging.String("file", path),
				logging.Error(err))
			return nil
		}
		summary.FilesProcessed++
		return nil
	})
	if err != nil {
		return summary, err
	}

	i.logger.Info("import complete",
		logging.Int("files", summary.FilesProcessed),
		logging.Int("inserted", summary.Inserted),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("invalid", summary.Invalid))
	return summary, nil
}

// partitionFor derives (category, subcategory) from a file's position under
// the data root. Files directly under root fall into the uncategorized
// partition; a missing subcategory level yields the empty string.
func partitionFor(root, path string) (string, string) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return UncategorizedDir, ""
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) < 2 {
		return UncategorizedDir, ""
	}
	category := parts[0]
	if len(parts) < 3 {
		return category, ""
	}
	return category, parts[1]
}

func (i *Importer) importFile(ctx context.Context, path, category, subcategory string, summary *Summary) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	for _, element := range records {
		// Decode record by record so one malformed entry cannot take the
		// rest of the file down with it.
		var raw rawRecord
		if err := json.Unmarshal(element, &raw); err != nil {
			summary.Invalid++
			i.logger.Warn("skipping malformed record",
				logging.String("file", path),
				logging.Error(err))
			continue
		}
		profile, ok := extract(raw, category, subcategory, path)
		if !ok {
			summary.Invalid++
			continue
		}
		_, inserted, err := i.store.InsertIfAbsent(ctx, profile)
		if err != nil {
			return fmt.Errorf("insert admin %d: %w", profile.AdminID, err)
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Duplicates++
		}
	}

	i.logger.Debug("file imported",
		logging.String("file", path),
		logging.String("category", category),
		logging.String("subcategory", subcategory),
		logging.Int("records", len(records)))
	return nil
}
