package openrouter

import (
	"fmt"
	"strings"
)

// portraitSystemPrompt instructs the model to answer with exactly two labeled
// lines so the response can be parsed without a structured output mode.
const portraitSystemPrompt = `You write Stable Diffusion prompts for professional portrait photographs.
Given a person's name, profession, and workplace, respond with exactly two lines:

POSITIVE: <a detailed prompt describing a realistic professional headshot of the person, their attire, expression, and setting appropriate to their profession>
NEGATIVE: <undesirable attributes to exclude from the image>

Do not include any other text, markdown, or explanation.`

func buildUserMessage(profile ProfileContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s %s\n", profile.FirstName, profile.LastName)
	fmt.Fprintf(&b, "Profession: %s", profile.Category)
	if profile.Subcategory != "" {
		fmt.Fprintf(&b, " (%s)", profile.Subcategory)
	}
	b.WriteString("\n")
	if profile.OrganizationName != "" {
		fmt.Fprintf(&b, "Workplace: %s\n", profile.OrganizationName)
	}
	if profile.OrganizationTown != "" {
		fmt.Fprintf(&b, "Town: %s\n", profile.OrganizationTown)
	}
	if profile.Languages != "" {
		fmt.Fprintf(&b, "Languages: %s\n", profile.Languages)
	}
	return strings.TrimSpace(b.String())
}
