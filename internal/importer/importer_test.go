package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"persona/internal/importer"
	"persona/internal/store"
	"persona/internal/testsupport"
)

func TestRunImportsNestedRecords(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "dental", "riga.json"), []any{
		testsupport.OrgRecord(101, "Maija", "Ozola", "Smile Clinic", "Riga", []string{"lv", "en"}),
		testsupport.OrgRecord(102, "Janis", "Berzins", "Bright Dental", "Liepaja", nil),
	})

	imp := importer.New(st, nil)
	summary, err := imp.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesProcessed != 1 || summary.Inserted != 2 || summary.Duplicates != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	profiles, err := st.List(context.Background(), store.Filter{Category: "clinics"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	first := profiles[0]
	if first.AdminID != 101 || first.Category != "clinics" || first.Subcategory != "dental" {
		t.Fatalf("unexpected partition: %+v", first)
	}
	if first.OrganizationName != "Smile Clinic" || first.OrganizationTown != "Riga" {
		t.Fatalf("unexpected organization fields: %+v", first)
	}
	if first.Languages != "lv, en" {
		t.Fatalf("unexpected languages: %q", first.Languages)
	}
	if profiles[1].Languages != "" {
		t.Fatalf("expected empty languages for missing langs, got %q", profiles[1].Languages)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	testsupport.WriteJSON(t, filepath.Join(root, "schools", "music", "profiles.json"), []any{
		testsupport.OrgRecord(7, "Anna", "Kalnina", "Music School", "Cesis", nil),
	})

	imp := importer.New(st, nil)
	if _, err := imp.Run(context.Background(), root); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	summary, err := imp.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Inserted != 0 || summary.Duplicates != 1 {
		t.Fatalf("expected duplicate-only rerun, got %+v", summary)
	}
}

func TestRunSkipsRecordsWithoutAdminID(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "list.json"), []any{
		testsupport.OrgRecord(0, "No", "Identity", "Org", "Town", nil),
		testsupport.OrgRecord(5, "Has", "Identity", "Org", "Town", nil),
	})

	summary, err := importer.New(st, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Inserted != 1 || summary.Invalid != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunAcceptsNonListLangsValue(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	stringLangs := testsupport.OrgRecord(21, "Ilze", "Liepa", "Org", "Town", nil)
	stringLangs["prv"].(map[string]any)["org"].(map[string]any)["langs"] = "lv; ru"
	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "mixed.json"), []any{
		stringLangs,
		testsupport.OrgRecord(22, "Ligita", "Ozola", "Org", "Town", []string{"lv", "en"}),
	})

	summary, err := importer.New(st, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Inserted != 2 || summary.Invalid != 0 || summary.FilesSkipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	profiles, err := st.List(context.Background(), store.Filter{Category: "clinics"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if profiles[0].Languages != "lv; ru" {
		t.Fatalf("expected string langs kept as-is, got %q", profiles[0].Languages)
	}
	if profiles[1].Languages != "lv, en" {
		t.Fatalf("expected list langs joined, got %q", profiles[1].Languages)
	}
}

func TestRunMalformedRecordDoesNotPoisonFile(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "partial.json"), []any{
		map[string]any{"prv": 42},
		testsupport.OrgRecord(31, "Valid", "Record", "Org", "Town", nil),
	})

	summary, err := importer.New(st, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesProcessed != 1 || summary.FilesSkipped != 0 {
		t.Fatalf("expected file to survive one bad record, got %+v", summary)
	}
	if summary.Inserted != 1 || summary.Invalid != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	profiles, err := st.List(context.Background(), store.Filter{Category: "clinics"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 1 || profiles[0].AdminID != 31 {
		t.Fatalf("expected the sibling record imported, got %+v", profiles)
	}
}

func TestRunSkipsMalformedFilesAndContinues(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	broken := filepath.Join(root, "clinics", "broken.json")
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "valid.json"), []any{
		testsupport.OrgRecord(9, "Ok", "Record", "Org", "Town", nil),
	})

	summary, err := importer.New(st, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesSkipped != 1 || summary.FilesProcessed != 1 || summary.Inserted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunFailsOnMissingRoot(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := importer.New(st, nil).Run(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing data directory")
	}
}

func TestRunPartitionsUncategorizedAndMissingSubcategory(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	root := t.TempDir()

	testsupport.WriteJSON(t, filepath.Join(root, "loose.json"), []any{
		testsupport.OrgRecord(1, "Root", "Level", "Org", "Town", nil),
	})
	testsupport.WriteJSON(t, filepath.Join(root, "clinics", "flat.json"), []any{
		testsupport.OrgRecord(2, "Category", "Only", "Org", "Town", nil),
	})

	if _, err := importer.New(st, nil).Run(context.Background(), root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	loose, err := st.List(context.Background(), store.Filter{Category: importer.UncategorizedDir})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(loose) != 1 || loose[0].Subcategory != "" {
		t.Fatalf("unexpected uncategorized rows: %+v", loose)
	}

	flat, err := st.List(context.Background(), store.Filter{Category: "clinics"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(flat) != 1 || flat[0].Subcategory != "" {
		t.Fatalf("unexpected category rows: %+v", flat)
	}
}
