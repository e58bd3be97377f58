package organizer_test

import (
	"path/filepath"
	"testing"

	"persona/internal/organizer"
)

func TestResolveIsDeterministic(t *testing.T) {
	r := organizer.NewResolver("/out")

	first := r.Resolve("clinics", "dental", 42, "Maija", "Ozola")
	second := r.Resolve("clinics", "dental", 42, "Maija", "Ozola")
	if first != second {
		t.Fatalf("expected identical paths, got %q and %q", first, second)
	}

	want := filepath.Join("/out", "clinics", "dental", "admin_42_Maija_Ozola.png")
	if first != want {
		t.Fatalf("unexpected path: got %q want %q", first, want)
	}
}

func TestResolveDistinctAdminIDsNeverCollide(t *testing.T) {
	r := organizer.NewResolver("/out")

	a := r.Resolve("clinics", "dental", 1, "Maija", "Ozola")
	b := r.Resolve("clinics", "dental", 2, "Maija", "Ozola")
	if a == b {
		t.Fatalf("expected distinct paths for distinct admin ids, both %q", a)
	}
}

func TestResolveUsesPlaceholderForMissingSubcategory(t *testing.T) {
	r := organizer.NewResolver("/out")

	got := r.Resolve("clinics", "", 3, "Janis", "Berzins")
	want := filepath.Join("/out", "clinics", organizer.NoSubcategoryDir, "admin_3_Janis_Berzins.png")
	if got != want {
		t.Fatalf("unexpected path: got %q want %q", got, want)
	}
}

func TestResolveSanitizesNameComponents(t *testing.T) {
	r := organizer.NewResolver("/out")

	got := r.Resolve("clinics", "dental", 4, "Anna/Marija", "O'Brien")
	want := filepath.Join("/out", "clinics", "dental", "admin_4_AnnaMarija_OBrien.png")
	if got != want {
		t.Fatalf("unexpected path: got %q want %q", got, want)
	}
}
