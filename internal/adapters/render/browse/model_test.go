package browse

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/domain"
)

type fakeController struct {
	mu       sync.Mutex
	view     application.View
	switched []domain.PatientID
	loggedIn bool
	bundles  map[domain.PatientID]domain.ClinicalBundle
	failures map[domain.PatientID]string
}

func newFakeController() *fakeController {
	launch := domain.LaunchContext{PatientID: "eps-001", Organization: "OYS"}
	return &fakeController{
		view: application.View{
			Session: domain.Session{ID: "s-1", LoggedIn: true, Launch: &launch, ActivePatientID: "eps-001"},
			Directory: domain.PatientDirectory{Loaded: true, Entries: []domain.DirectoryEntry{
				{ID: "eps-001", Name: "Aino Virtanen", Identifier: "010185-123A"},
				{ID: "eps-002", Name: "Mikko Korhonen", Identifier: "020290-456B"},
			}},
			Load: domain.IdleState(),
		},
		loggedIn: true,
		bundles: map[domain.PatientID]domain.ClinicalBundle{
			"eps-001": {Patient: domain.Patient{ID: "eps-001", Name: []domain.HumanName{{Given: []string{"Aino"}, Family: "Virtanen"}}}},
			"eps-002": {Patient: domain.Patient{ID: "eps-002", Name: []domain.HumanName{{Given: []string{"Mikko"}, Family: "Korhonen"}}}},
		},
		failures: map[domain.PatientID]string{},
	}
}

func (f *fakeController) Snapshot() application.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeController) load(id domain.PatientID) (domain.LoadState, error) {
	if message, ok := f.failures[id]; ok {
		f.view.Load = domain.FailedState(id, message)
		return f.view.Load, &application.LoadError{PatientID: id, Resource: application.ResourceCondition}
	}
	f.view.Load = domain.LoadedState(id, f.bundles[id])
	return f.view.Load, nil
}

func (f *fakeController) SwitchPatient(_ context.Context, id domain.PatientID) (domain.LoadState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switched = append(f.switched, id)
	f.view.Session.ActivePatientID = id
	return f.load(id)
}

func (f *fakeController) Activate(_ context.Context) (domain.LoadState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(f.view.Session.ActivePatientID)
}

func (f *fakeController) Logout(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = false
	f.view = application.View{Load: domain.IdleState()}
	return nil
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelShowsLoadingThenOverview(t *testing.T) {
	controller := newFakeController()
	m := New(context.Background(), controller)

	assert.Contains(t, m.View(), "Loading patient data...")

	m, _ = update(t, m, m.activate()())
	view := m.View()
	assert.Contains(t, view, "Patient Summary")
	assert.Contains(t, view, "Aino Virtanen")
}

func TestModelTabTogglesDetails(t *testing.T) {
	controller := newFakeController()
	m := New(context.Background(), controller)
	m, _ = update(t, m, m.activate()())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabDetails, m.Tab())
	assert.Contains(t, m.View(), "Patient Details")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabOverview, m.Tab())
}

func TestModelNextPatientSwitchesAndLoads(t *testing.T) {
	controller := newFakeController()
	m := New(context.Background(), controller)
	m, _ = update(t, m, m.activate()())

	m, cmd := update(t, m, runeKey("n"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading patient data...")
	assert.Contains(t, m.View(), "Mikko Korhonen (020290-456B)")

	m, _ = update(t, m, cmd())
	assert.Equal(t, []domain.PatientID{"eps-002"}, controller.switched)
	assert.Contains(t, m.View(), "Mikko Korhonen")
	assert.Contains(t, m.View(), "Patient Summary")

	_, cmd = update(t, m, runeKey("p"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []domain.PatientID{"eps-002", "eps-001"}, controller.switched)
}

func TestModelIgnoresSupersededResult(t *testing.T) {
	controller := newFakeController()
	m := New(context.Background(), controller)
	m, _ = update(t, m, m.activate()())
	m, _ = update(t, m, runeKey("n"))

	m, _ = update(t, m, loadDoneMsg{patientID: "eps-001", err: domain.ErrSuperseded})
	assert.Equal(t, domain.PatientID("eps-002"), m.view.Session.ActivePatientID)
	assert.Equal(t, domain.LoadingState("eps-002"), m.view.Load)
}

func TestModelShowsSingleErrorBanner(t *testing.T) {
	controller := newFakeController()
	controller.failures["eps-001"] = "load Condition for patient eps-001: status 500"
	m := New(context.Background(), controller)

	m, _ = update(t, m, m.activate()())
	view := m.View()
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "status 500")
	assert.NotContains(t, view, "Patient Summary")
}

func TestModelLogoutQuits(t *testing.T) {
	controller := newFakeController()
	m := New(context.Background(), controller)

	m, cmd := update(t, m, runeKey("l"))
	require.NotNil(t, cmd)

	m, cmd = update(t, m, cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.LoggedOut())
	assert.False(t, controller.loggedIn)
	assert.Empty(t, m.View())
}

func TestModelQuitKey(t *testing.T) {
	m := New(context.Background(), newFakeController())

	_, cmd := update(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
