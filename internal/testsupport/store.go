package testsupport

import (
	"context"
	"testing"

	"persona/internal/config"
	"persona/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// InsertProfile inserts a profile for tests and fails on duplicates.
func InsertProfile(t testing.TB, st *store.Store, attrs store.NewProfile) *store.Profile {
	t.Helper()

	profile, inserted, err := st.InsertIfAbsent(context.Background(), attrs)
	if err != nil {
		t.Fatalf("store.InsertIfAbsent: %v", err)
	}
	if !inserted {
		t.Fatalf("expected insert for admin %d, got duplicate", attrs.AdminID)
	}
	return profile
}

// SeedProfiles inserts count profiles under the given partition with
// ascending admin ids starting at 1.
func SeedProfiles(t testing.TB, st *store.Store, category, subcategory string, count int) []*store.Profile {
	t.Helper()

	profiles := make([]*store.Profile, 0, count)
	for i := 1; i <= count; i++ {
		profiles = append(profiles, InsertProfile(t, st, store.NewProfile{
			AdminID:          int64(i),
			Category:         category,
			Subcategory:      subcategory,
			FirstName:        "Test",
			LastName:         "Admin",
			OrganizationName: "Test Org",
			SourceFile:       "seed.json",
		}))
	}
	return profiles
}
