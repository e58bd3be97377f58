package store

import (
	"strings"
	"time"
)

// Stage identifies one of the two sequential generation phases.
type Stage string

const (
	StagePrompt Stage = "prompt"
	StageImage  Stage = "image"
)

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	switch Stage(strings.ToLower(strings.TrimSpace(value))) {
	case StagePrompt:
		return StagePrompt, true
	case StageImage:
		return StageImage, true
	default:
		return "", false
	}
}

// PromptPair holds the positive/negative prompt artifact produced by the
// prompt stage.
type PromptPair struct {
	Positive string
	Negative string
}

// IsComplete reports whether both halves of the pair are present.
func (p PromptPair) IsComplete() bool {
	return strings.TrimSpace(p.Positive) != "" && strings.TrimSpace(p.Negative) != ""
}

// Profile represents one imported administrator record persisted in SQLite.
//
// (AdminID, Category, Subcategory) is the dedup key; Subcategory uses the
// empty string for uncategorized imports so the unique index holds.
type Profile struct {
	ID               int64
	AdminID          int64
	Category         string
	Subcategory      string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	OrganizationName string
	OrganizationTown string
	Languages        string
	SourceFile       string
	PositivePrompt   string
	NegativePrompt   string
	ImagePath        string
	PromptGenerated  bool
	ImageGenerated   bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName returns the profile's human-readable name for log lines and
// CLI output.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return "(unnamed)"
	}
	return name
}

// PromptArtifact returns the stored prompt pair.
func (p *Profile) PromptArtifact() PromptPair {
	return PromptPair{Positive: p.PositivePrompt, Negative: p.NegativePrompt}
}

// NewProfile carries the attributes inserted on first sighting of a dedup
// key. Descriptive fields never change after insert; missing optional source
// fields are stored as empty strings rather than defaulted placeholders.
type NewProfile struct {
	AdminID          int64
	Category         string
	Subcategory      string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	OrganizationName string
	OrganizationTown string
	Languages        string
	SourceFile       string
}

// Filter narrows List queries for CLI views.
type Filter struct {
	Category     string
	Subcategory  *string
	PendingStage Stage
}

// CategoryStats aggregates progress counts for one (category, subcategory)
// partition.
type CategoryStats struct {
	Category    string
	Subcategory string
	Total       int
	Prompts     int
	Images      int
}

// Stats summarizes overall pipeline progress.
type Stats struct {
	Total      int
	Prompts    int
	Images     int
	Categories []CategoryStats
}
