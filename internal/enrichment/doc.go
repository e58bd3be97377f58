// Package enrichment appends standard quality and exclusion suffixes to
// generated prompts. Rules are idempotent so prompts can be re-enriched
// safely when a run is resumed.
package enrichment
