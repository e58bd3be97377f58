package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"persona/internal/organizer"
	"persona/internal/pipeline"
	"persona/internal/store"
	"persona/internal/testsupport"
)

func markPromptsDone(t *testing.T, st *store.Store, profiles []*store.Profile) {
	t.Helper()
	for _, profile := range profiles {
		pair := store.PromptPair{Positive: "portrait", Negative: "blur"}
		if err := st.MarkPromptDone(context.Background(), profile.ID, pair); err != nil {
			t.Fatalf("MarkPromptDone: %v", err)
		}
	}
}

func TestGenerateImagesWritesFilesAndMarksDone(t *testing.T) {
	p, st, cfg := newPipeline(t)
	profiles := testsupport.SeedProfiles(t, st, "clinics", "dental", 2)
	markPromptsDone(t, st, profiles)

	renderer := &fakeRenderer{image: []byte("png-bytes")}
	summary, err := p.GenerateImages(context.Background(), renderer, pipeline.Options{})
	if err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	if summary.Selected != 2 || summary.Processed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if renderer.calls != 2 {
		t.Fatalf("expected 2 render calls, got %d", renderer.calls)
	}

	stored, err := st.GetByID(context.Background(), profiles[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.ImageGenerated || stored.ImagePath == "" {
		t.Fatalf("expected image completion, got %+v", stored)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "clinics", "dental", "admin_1_Test_Admin.png")
	if stored.ImagePath != want {
		t.Fatalf("unexpected image path: got %q want %q", stored.ImagePath, want)
	}
	data, err := os.ReadFile(stored.ImagePath)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected image content: %q", data)
	}
}

func TestGenerateImagesUsesNoSubcategoryPlaceholder(t *testing.T) {
	p, st, cfg := newPipeline(t)
	profiles := testsupport.SeedProfiles(t, st, "clinics", "", 1)
	markPromptsDone(t, st, profiles)

	if _, err := p.GenerateImages(context.Background(), &fakeRenderer{image: []byte("x")}, pipeline.Options{}); err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "clinics", organizer.NoSubcategoryDir, "admin_1_Test_Admin.png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected image at %q: %v", want, err)
	}
}

func TestGenerateImagesSkipsProfilesWithoutPrompts(t *testing.T) {
	p, st, _ := newPipeline(t)
	testsupport.SeedProfiles(t, st, "clinics", "", 2)

	renderer := &fakeRenderer{image: []byte("x")}
	summary, err := p.GenerateImages(context.Background(), renderer, pipeline.Options{})
	if err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	if summary.Selected != 0 || renderer.calls != 0 {
		t.Fatalf("expected no selection without prompts, got %+v with %d calls", summary, renderer.calls)
	}
}

func TestGenerateImagesFailureLeavesProfilePending(t *testing.T) {
	p, st, _ := newPipeline(t)
	profiles := testsupport.SeedProfiles(t, st, "clinics", "", 1)
	markPromptsDone(t, st, profiles)

	renderer := &fakeRenderer{err: errors.New("backend offline")}
	summary, err := p.GenerateImages(context.Background(), renderer, pipeline.Options{})
	if err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	if summary.Failed != 1 || summary.Processed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	pending, err := st.SelectPending(context.Background(), store.StageImage, 0, 0)
	if err != nil {
		t.Fatalf("SelectPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected failed profile to stay pending, got %d", len(pending))
	}
}

func TestGenerateImagesDryRunWritesNothing(t *testing.T) {
	p, st, cfg := newPipeline(t)
	profiles := testsupport.SeedProfiles(t, st, "clinics", "", 1)
	markPromptsDone(t, st, profiles)

	renderer := &fakeRenderer{image: []byte("x")}
	summary, err := p.GenerateImages(context.Background(), renderer, pipeline.Options{DryRun: true})
	if err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	if summary.Selected != 1 || summary.Processed != 0 || renderer.calls != 0 {
		t.Fatalf("dry run must not render, got %+v with %d calls", summary, renderer.calls)
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(cfg.Paths.OutputDir)
		if len(entries) != 0 {
			t.Fatalf("dry run must not create output files: %v", entries)
		}
	}
}

func TestRunExecutesBothStages(t *testing.T) {
	p, st, _ := newPipeline(t)
	testsupport.SeedProfiles(t, st, "clinics", "", 2)

	gen := &fakeGenerator{pair: store.PromptPair{Positive: "p", Negative: "n"}}
	renderer := &fakeRenderer{image: []byte("x")}
	run, err := p.Run(context.Background(), gen, renderer, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Prompts.Processed != 2 || run.Images.Processed != 2 {
		t.Fatalf("unexpected run summary: %+v", run)
	}

	stats, err := st.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 || stats.Prompts != 2 || stats.Images != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
