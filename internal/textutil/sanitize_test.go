package textutil

import "testing"

func TestSanitizeNameComponent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ozola", "Ozola"},
		{"O'Brien", "OBrien"},
		{"Anna-Marija", "Anna-Marija"},
		{"  J. Smith  ", "J Smith"},
		{"Žanis", "anis"},
		{"///", ""},
	}
	for _, tc := range cases {
		if got := SanitizeNameComponent(tc.in); got != tc.want {
			t.Fatalf("SanitizeNameComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
