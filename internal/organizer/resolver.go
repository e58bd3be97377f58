package organizer

import (
	"fmt"
	"path/filepath"

	"persona/internal/textutil"
)

// NoSubcategoryDir is the directory segment used when a profile has no
// subcategory partition.
const NoSubcategoryDir = "no_subcategory"

// Resolver derives output locations for rendered images. Resolve is a pure
// function of its inputs: the same profile identity always maps to the same
// path, and distinct admin ids never collide even when names do.
type Resolver struct {
	Root string
}

// NewResolver constructs a resolver rooted at the configured output directory.
func NewResolver(root string) Resolver {
	return Resolver{Root: root}
}

// Resolve composes the image path for a profile:
//
//	<root>/<category>/<subcategory|no_subcategory>/admin_<id>_<first>_<last>.png
//
// Name components keep only alphanumerics, space, hyphen, and underscore.
func (r Resolver) Resolve(category, subcategory string, adminID int64, firstName, lastName string) string {
	subdir := subcategory
	if subdir == "" {
		subdir = NoSubcategoryDir
	}
	filename := fmt.Sprintf(
		"admin_%d_%s_%s.png",
		adminID,
		textutil.SanitizeNameComponent(firstName),
		textutil.SanitizeNameComponent(lastName),
	)
	return filepath.Join(r.Root, category, subdir, filename)
}
