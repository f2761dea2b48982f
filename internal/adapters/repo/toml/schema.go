package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int             `toml:"version"`
	Session   sessionSchema   `toml:"session"`
	Directory directorySchema `toml:"directory"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID              string        `toml:"id"`
	LoggedIn        bool          `toml:"logged_in"`
	ActivePatientID string        `toml:"active_patient_id"`
	StartedAt       string        `toml:"started_at,omitempty"`
	Launch          *launchSchema `toml:"launch,omitempty"`
}

type launchSchema struct {
	PatientID      string `toml:"patient_id"`
	Organization   string `toml:"organization"`
	PractitionerID string `toml:"practitioner_id"`
	LaunchType     string `toml:"launch_type"`
}

type directorySchema struct {
	Loaded  bool          `toml:"loaded"`
	Entries []entrySchema `toml:"entries,omitempty"`
}

type entrySchema struct {
	ID         string `toml:"id"`
	Name       string `toml:"name,omitempty"`
	Identifier string `toml:"identifier"`
}
