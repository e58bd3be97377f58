package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// categoryLabel turns a directory-derived category token into a display label.
func categoryLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "(none)"
	}
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

func subcategoryLabel(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}
