package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteJSON marshals value and writes it to path, creating parent directories.
func WriteJSON(t testing.TB, path string, value any) {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// OrgRecord builds one nested organization record in the source layout the
// importer consumes. A zero adminID produces a record without the
// identifying key.
func OrgRecord(adminID int64, first, last, orgName, town string, langs []string) map[string]any {
	admin := map[string]any{
		"fname": first,
		"sname": last,
		"contacts": map[string]any{
			"email":       "",
			"phoneNumber": "",
		},
	}
	if adminID != 0 {
		admin["id"] = adminID
	}
	org := map[string]any{
		"name":  orgName,
		"admin": admin,
		"contacts": map[string]any{
			"address": map[string]any{
				"town": town,
			},
		},
	}
	if langs != nil {
		org["langs"] = langs
	}
	return map[string]any{
		"prv": map[string]any{
			"org": org,
		},
	}
}
