package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bnema/heihealth-cli/internal/domain"
	"github.com/bnema/heihealth-cli/internal/ports"
)

// View is a consistent picture of the session, its directory and the clinical load state.
type View struct {
	Session   domain.Session          `json:"session"`
	Directory domain.PatientDirectory `json:"directory"`
	Load      domain.LoadState        `json:"load"`
}

// SessionController owns the session lifecycle. All transitions of the session and the
// directory happen under mu, and logout also resets the aggregator inside the same section.
type SessionController struct {
	launcher   ports.LaunchService
	repo       ports.SessionRepository
	aggregator *Aggregator
	clock      ports.Clock
	logger     *zap.Logger
	newID      func() string

	mu        sync.Mutex
	session   domain.Session
	directory domain.PatientDirectory
}

type SessionControllerOption func(*SessionController)

func WithClock(clock ports.Clock) SessionControllerOption {
	return func(c *SessionController) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(logger *zap.Logger) SessionControllerOption {
	return func(c *SessionController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithSessionIDs(newID func() string) SessionControllerOption {
	return func(c *SessionController) {
		if newID != nil {
			c.newID = newID
		}
	}
}

func NewSessionController(launcher ports.LaunchService, repo ports.SessionRepository, aggregator *Aggregator, opts ...SessionControllerOption) *SessionController {
	c := &SessionController{
		launcher:   launcher,
		repo:       repo,
		aggregator: aggregator,
		clock:      ports.SystemClock{},
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *SessionController) Aggregator() *Aggregator {
	return c.aggregator
}

// Restore rehydrates a persisted session. A missing record leaves the controller logged out.
func (c *SessionController) Restore(ctx context.Context) error {
	if c.repo == nil {
		return nil
	}

	record, err := c.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}
	if err := record.Session.Validate(); err != nil {
		return fmt.Errorf("validate session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = record.Session
	c.directory = record.Directory
	if !c.session.LoggedIn {
		c.directory = domain.PatientDirectory{}
	}

	return nil
}

// Login launches a session for patientID at org. On failure the controller stays logged out.
// A login while already logged in replaces the previous session.
func (c *SessionController) Login(ctx context.Context, patientID domain.PatientID, org string) (domain.LaunchContext, error) {
	patientID = domain.PatientID(strings.TrimSpace(string(patientID)))
	if patientID == "" {
		return domain.LaunchContext{}, domain.ErrEmptyPatientID
	}
	org = strings.TrimSpace(org)

	launch, err := c.launcher.Launch(ctx, patientID, org)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return domain.LaunchContext{}, authErr
		}
		return domain.LaunchContext{}, &AuthError{Detail: detailOf(err), Err: err}
	}
	if strings.TrimSpace(string(launch.PatientID)) == "" {
		launch.PatientID = patientID
	}

	session := domain.Session{
		ID:              c.newID(),
		LoggedIn:        true,
		Launch:          &launch,
		ActivePatientID: launch.PatientID,
		StartedAt:       c.clock.Now(),
	}

	c.mu.Lock()
	if err := c.save(ctx, ports.SessionRecord{Session: session}); err != nil {
		c.mu.Unlock()
		return domain.LaunchContext{}, err
	}
	c.session = session
	c.directory = domain.PatientDirectory{}
	pending := c.aggregator.reset()
	c.mu.Unlock()

	pending.deliver()

	c.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("patient_id", string(launch.PatientID)),
		zap.String("organization", launch.Organization),
	)

	c.LoadDirectory(ctx)
	return launch, nil
}

// Logout clears the session, the directory and the clinical state in one step. It is idempotent.
func (c *SessionController) Logout(ctx context.Context) error {
	previous, pending, err := c.clear(ctx)
	pending.deliver()
	if err != nil {
		return err
	}

	if previous != "" {
		c.logger.Info("session ended", zap.String("session_id", previous))
	}
	return nil
}

func (c *SessionController) clear(ctx context.Context) (string, notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.session.ID
	c.session = domain.Session{}
	c.directory = domain.PatientDirectory{}
	pending := c.aggregator.reset()

	if c.repo != nil {
		if err := c.repo.Clear(ctx); err != nil {
			return previous, pending, fmt.Errorf("clear session: %w", err)
		}
	}
	return previous, pending, nil
}

// LoadDirectory fetches the patient list. Failures are logged and produce an empty, loaded
// directory. A result that arrives after the session changed is dropped.
func (c *SessionController) LoadDirectory(ctx context.Context) domain.PatientDirectory {
	c.mu.Lock()
	if !c.session.LoggedIn {
		c.mu.Unlock()
		return domain.PatientDirectory{}
	}
	sessionID := c.session.ID
	c.mu.Unlock()

	logger := c.logger.With(zap.String("session_id", sessionID))

	entries, err := c.launcher.ListPatients(ctx)
	if err != nil {
		logger.Warn("patient directory unavailable", zap.Error(&DirectoryLoadError{Err: err}))
		entries = nil
	}

	directory := domain.PatientDirectory{Loaded: true, Entries: make([]domain.DirectoryEntry, 0, len(entries))}
	for _, entry := range entries {
		entry = domain.NormalizeDirectoryEntry(entry)
		if entry.ID == "" {
			continue
		}
		directory.Entries = append(directory.Entries, entry)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.LoggedIn || c.session.ID != sessionID {
		logger.Debug("dropping directory for a previous session")
		return c.directory
	}
	c.directory = directory
	if err := c.save(ctx, ports.SessionRecord{Session: c.session, Directory: directory}); err != nil {
		logger.Warn("persist patient directory", zap.Error(err))
	}
	logger.Debug("patient directory loaded", zap.Int("patients", len(directory.Entries)))

	return directory
}

// SwitchPatient makes id the active patient and loads its clinical data.
func (c *SessionController) SwitchPatient(ctx context.Context, id domain.PatientID) (domain.LoadState, error) {
	id = domain.PatientID(strings.TrimSpace(string(id)))
	if id == "" {
		return c.aggregator.State(), domain.ErrEmptyPatientID
	}

	c.mu.Lock()
	if !c.session.LoggedIn {
		c.mu.Unlock()
		return c.aggregator.State(), domain.ErrNotLoggedIn
	}
	session := c.session
	session.ActivePatientID = id
	if err := c.save(ctx, ports.SessionRecord{Session: session, Directory: c.directory}); err != nil {
		c.mu.Unlock()
		return c.aggregator.State(), err
	}
	c.session = session
	ticket, pending := c.aggregator.begin(ctx, id)
	c.mu.Unlock()

	pending.deliver()

	c.logger.Info("active patient switched", zap.String("session_id", session.ID), zap.String("patient_id", string(id)))

	return c.finish(ticket)
}

// Activate loads the active patient unless its data is already loaded or loading.
func (c *SessionController) Activate(ctx context.Context) (domain.LoadState, error) {
	c.mu.Lock()
	if !c.session.LoggedIn {
		c.mu.Unlock()
		return c.aggregator.State(), domain.ErrNotLoggedIn
	}
	id := c.session.ActivePatientID
	if state := c.aggregator.State(); state.Current(id) {
		c.mu.Unlock()
		return state, nil
	}
	ticket, pending := c.aggregator.begin(ctx, id)
	c.mu.Unlock()

	pending.deliver()
	return c.finish(ticket)
}

func (c *SessionController) finish(ticket loadTicket) (domain.LoadState, error) {
	_, err := c.aggregator.run(ticket)
	return c.aggregator.State(), err
}

func (c *SessionController) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Session:   c.session,
		Directory: c.directory,
		Load:      c.aggregator.State(),
	}
}

func (c *SessionController) save(ctx context.Context, record ports.SessionRecord) error {
	if c.repo == nil {
		return nil
	}
	if err := c.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

type detailer interface {
	ErrorDetail() string
}

func detailOf(err error) string {
	var d detailer
	if errors.As(err, &d) {
		return d.ErrorDetail()
	}
	return ""
}
