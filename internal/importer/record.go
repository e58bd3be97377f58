package importer

import (
	"encoding/json"
	"strings"

	"persona/internal/store"
)

// rawRecord mirrors the nested provider export layout. Every level is
// optional; extraction tolerates missing branches and fills empty strings.
type rawRecord struct {
	Provider struct {
		Org struct {
			Name     string          `json:"name"`
			Langs    json.RawMessage `json:"langs"`
			Contacts struct {
				Address struct {
					Town string `json:"town"`
				} `json:"address"`
			} `json:"contacts"`
			Admin struct {
				ID        int64  `json:"id"`
				FirstName string `json:"fname"`
				LastName  string `json:"sname"`
				Contacts  struct {
					Email string `json:"email"`
					Phone string `json:"phoneNumber"`
				} `json:"contacts"`
			} `json:"admin"`
		} `json:"org"`
	} `json:"prv"`
}

// extract maps a raw record onto the insert attributes for the given source
// partition. Records without an administrator id carry no usable identity and
// are reported as not ok.
func extract(raw rawRecord, category, subcategory, sourceFile string) (store.NewProfile, bool) {
	admin := raw.Provider.Org.Admin
	if admin.ID == 0 {
		return store.NewProfile{}, false
	}
	org := raw.Provider.Org
	return store.NewProfile{
		AdminID:          admin.ID,
		Category:         category,
		Subcategory:      subcategory,
		FirstName:        strings.TrimSpace(admin.FirstName),
		LastName:         strings.TrimSpace(admin.LastName),
		Email:            strings.TrimSpace(admin.Contacts.Email),
		Phone:            strings.TrimSpace(admin.Contacts.Phone),
		OrganizationName: strings.TrimSpace(org.Name),
		OrganizationTown: strings.TrimSpace(org.Contacts.Address.Town),
		Languages:        languagesString(org.Langs),
		SourceFile:       sourceFile,
	}, true
}

// languagesString flattens the langs value: a list joins with ", ", anything
// else is kept as its text form. Source files are inconsistent here, so a
// non-list value must not fail the record.
func languagesString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return strings.TrimSpace(string(raw))
}
