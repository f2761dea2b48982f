package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/heihealth-cli/internal/domain"
	"github.com/bnema/heihealth-cli/internal/ports"
)

const (
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
	tempFilePattern = ".session-*.toml.tmp"
)

// SessionRepository keeps the current session and its patient directory in a single TOML file.
type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(path string) (*SessionRepository, error) {
	if path == "" {
		return nil, errors.New("session path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) Path() string {
	return r.path
}

func (r *SessionRepository) Load(ctx context.Context) (ports.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return ports.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return ports.SessionRecord{}, err
	}
	if !found {
		return ports.SessionRecord{}, domain.ErrSessionNotFound
	}

	return fromSchema(file), nil
}

func (r *SessionRepository) Save(ctx context.Context, record ports.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Session.Validate(); err != nil {
		return fmt.Errorf("validate session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(record))
}

// Clear removes the session file. Clearing an absent session is not an error.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (r *SessionRepository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *SessionRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.path, sessionFileMode); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

func toSchema(record ports.SessionRecord) fileSchema {
	session := record.Session
	file := fileSchema{
		Version: currentSchemaVersion,
		Session: sessionSchema{
			ID:              session.ID,
			LoggedIn:        session.LoggedIn,
			ActivePatientID: string(session.ActivePatientID),
			StartedAt:       formatTime(session.StartedAt),
		},
		Directory: directorySchema{Loaded: record.Directory.Loaded},
	}
	if session.Launch != nil {
		file.Session.Launch = &launchSchema{
			PatientID:      string(session.Launch.PatientID),
			Organization:   session.Launch.Organization,
			PractitionerID: session.Launch.PractitionerID,
			LaunchType:     session.Launch.LaunchType,
		}
	}
	for _, entry := range record.Directory.Entries {
		file.Directory.Entries = append(file.Directory.Entries, entrySchema{
			ID:         string(entry.ID),
			Name:       entry.Name,
			Identifier: entry.Identifier,
		})
	}

	return file
}

func fromSchema(file fileSchema) ports.SessionRecord {
	session := domain.Session{
		ID:              file.Session.ID,
		LoggedIn:        file.Session.LoggedIn,
		ActivePatientID: domain.PatientID(file.Session.ActivePatientID),
		StartedAt:       parseTime(file.Session.StartedAt),
	}
	if launch := file.Session.Launch; launch != nil {
		session.Launch = &domain.LaunchContext{
			PatientID:      domain.PatientID(launch.PatientID),
			Organization:   launch.Organization,
			PractitionerID: launch.PractitionerID,
			LaunchType:     launch.LaunchType,
		}
	}

	directory := domain.PatientDirectory{Loaded: file.Directory.Loaded}
	if len(file.Directory.Entries) > 0 {
		directory.Entries = make([]domain.DirectoryEntry, 0, len(file.Directory.Entries))
	}
	for _, entry := range file.Directory.Entries {
		directory.Entries = append(directory.Entries, domain.NormalizeDirectoryEntry(domain.DirectoryEntry{
			ID:         domain.PatientID(entry.ID),
			Name:       entry.Name,
			Identifier: entry.Identifier,
		}))
	}

	return ports.SessionRecord{Session: session, Directory: directory}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
