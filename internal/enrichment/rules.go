package enrichment

import "strings"

// Rule appends a fixed suffix to prompt text exactly once. Marker is a
// substring that identifies whether the suffix is already present, so
// reprocessing a stored prompt never stacks duplicate boilerplate.
type Rule struct {
	Marker string
	Suffix string
}

// Apply returns the text with the rule's suffix appended. Text that already
// contains the marker is returned unchanged.
func (r Rule) Apply(text string) string {
	if strings.Contains(text, r.Marker) {
		return text
	}
	return text + r.Suffix
}

const (
	positiveSuffix = ", studio lighting, crisp, 8k, ultra-detailed, Canon EOS R5, award-winning photography"
	negativeSuffix = ", low quality, bad anatomy, deformed, ugly, disfigured, blurry, worst quality, low resolution, bad hands, missing fingers, extra fingers, bad eyes, bad facial features, unprofessional, casual clothes, messy background"
)

// PositiveRule carries the photographic quality suffix applied to every
// positive prompt before it is stored.
func PositiveRule() Rule {
	return Rule{Marker: "studio lighting", Suffix: positiveSuffix}
}

// NegativeRule carries the defect-exclusion suffix applied to every negative
// prompt before it is stored.
func NegativeRule() Rule {
	return Rule{Marker: "bad anatomy", Suffix: negativeSuffix}
}
