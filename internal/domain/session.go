package domain

import (
	"fmt"
	"strings"
	"time"
)

type PatientID string

const LaunchTypeProviderEHR = "provider-ehr"

type LaunchContext struct {
	PatientID      PatientID `json:"patientId"`
	Organization   string    `json:"organization"`
	PractitionerID string    `json:"practitionerId"`
	LaunchType     string    `json:"launchType"`
}

// Session is the login state of one user. The zero value is the logged-out session.
type Session struct {
	ID              string         `json:"id"`
	LoggedIn        bool           `json:"loggedIn"`
	Launch          *LaunchContext `json:"launch,omitempty"`
	ActivePatientID PatientID      `json:"activePatientId,omitempty"`
	StartedAt       time.Time      `json:"startedAt"`
}

func (s Session) Validate() error {
	if !s.LoggedIn {
		return nil
	}
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if s.Launch == nil {
		return fmt.Errorf("launch context is required")
	}
	if strings.TrimSpace(string(s.ActivePatientID)) == "" {
		return fmt.Errorf("active patient id is required")
	}

	return nil
}

func (s Session) Organization() string {
	if s.Launch == nil {
		return ""
	}
	return s.Launch.Organization
}

type DirectoryEntry struct {
	ID         PatientID `json:"id"`
	Name       string    `json:"name"`
	Identifier string    `json:"identifier"`
}

// DisplayText renders "Name (identifier)", or just the identifier when the name is unknown.
func (e DirectoryEntry) DisplayText() string {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return e.Identifier
	}
	return fmt.Sprintf("%s (%s)", name, e.Identifier)
}

type PatientDirectory struct {
	Entries []DirectoryEntry `json:"entries"`
	Loaded  bool             `json:"loaded"`
}

func (d PatientDirectory) Find(id PatientID) (DirectoryEntry, bool) {
	for _, entry := range d.Entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return DirectoryEntry{}, false
}

func (d PatientDirectory) Contains(id PatientID) bool {
	_, ok := d.Find(id)
	return ok
}

// Neighbour returns the entry offset positions away from id, wrapping around.
// An id not in the directory is treated as sitting before the first entry.
func (d PatientDirectory) Neighbour(id PatientID, offset int) (DirectoryEntry, bool) {
	n := len(d.Entries)
	if n == 0 {
		return DirectoryEntry{}, false
	}

	current := -1
	for i, entry := range d.Entries {
		if entry.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		if offset > 0 {
			return d.Entries[0], true
		}
		return d.Entries[n-1], true
	}

	next := ((current+offset)%n + n) % n
	return d.Entries[next], true
}

// NormalizeDirectoryEntry fills in the identifier from the id and trims whitespace.
func NormalizeDirectoryEntry(entry DirectoryEntry) DirectoryEntry {
	entry.ID = PatientID(strings.TrimSpace(string(entry.ID)))
	entry.Name = strings.TrimSpace(entry.Name)
	entry.Identifier = strings.TrimSpace(entry.Identifier)
	if entry.Identifier == "" {
		entry.Identifier = string(entry.ID)
	}
	return entry
}

var organizationLabels = map[string]string{
	"OYS":         "Oulun yliopistollinen sairaala",
	"OULUHVA":     "Oulun yliopistollinen sairaala",
	"HUS":         "Helsinki University Hospital",
	"HELSINKIHUS": "Helsinki University Hospital",
	"TAYS":        "Tampere University Hospital",
	"TAMPERETAYS": "Tampere University Hospital",
}

func OrganizationLabel(org string) string {
	trimmed := strings.TrimSpace(org)
	if label, ok := organizationLabels[strings.ToUpper(trimmed)]; ok {
		return label
	}
	return trimmed
}
