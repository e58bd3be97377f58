package main

import (
	"strings"
	"testing"
)

func TestRenderStatusLinePlain(t *testing.T) {
	line := renderStatusLine("Prompts done", statusOK, "2/2", false)
	if !strings.Contains(line, "Prompts done:") || !strings.Contains(line, "[OK] 2/2") {
		t.Fatalf("unexpected status line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no ANSI codes without colorize: %q", line)
	}
}

func TestRenderStatusLineColorized(t *testing.T) {
	line := renderStatusLine("Images done", statusWarn, "0/2", true)
	if !strings.HasPrefix(line, ansiYellow) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected yellow wrapping: %q", line)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Pipeline status", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %v", lines)
	}
	if lines[0] != "== Pipeline status ==" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length mismatch: %q vs %q", lines[0], lines[1])
	}
}

func TestCategoryLabels(t *testing.T) {
	if got := categoryLabel("music_schools"); got != "Music Schools" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := subcategoryLabel(""); got != "-" {
		t.Fatalf("expected dash for empty subcategory, got %q", got)
	}
}
