package browse

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/heihealth-cli/internal/adapters/render/summary"
	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/domain"
)

type Tab int

const (
	TabOverview Tab = iota
	TabDetails
)

const helpText = "tab overview/details  n/p next/previous patient  l log out  q quit"

// Controller is the part of the session controller the browser drives.
type Controller interface {
	Snapshot() application.View
	SwitchPatient(ctx context.Context, id domain.PatientID) (domain.LoadState, error)
	Activate(ctx context.Context) (domain.LoadState, error)
	Logout(ctx context.Context) error
}

type loadDoneMsg struct {
	patientID domain.PatientID
	err       error
}

type loggedOutMsg struct {
	err error
}

type Model struct {
	ctx        context.Context
	controller Controller
	spinner    spinner.Model
	help       lipgloss.Style
	tab        Tab
	view       application.View
	loggedOut  bool
	err        error
}

func New(ctx context.Context, controller Controller) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:        ctx,
		controller: controller,
		spinner:    s,
		help:       lipgloss.NewStyle().Faint(true).MarginTop(1),
		view:       controller.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.activate())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case loadDoneMsg:
		// Results of a superseded load carry no data; the snapshot already reflects the newest load.
		if errors.Is(msg.err, domain.ErrSuperseded) && msg.patientID != m.view.Session.ActivePatientID {
			return m, nil
		}
		m.view = m.controller.Snapshot()
		return m, nil
	case loggedOutMsg:
		m.loggedOut = msg.err == nil
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.tab == TabOverview {
			m.tab = TabDetails
		} else {
			m.tab = TabOverview
		}
		return m, nil
	case "n":
		return m.cycle(1)
	case "p":
		return m.cycle(-1)
	case "l":
		return m, m.logout()
	default:
		return m, nil
	}
}

func (m Model) cycle(offset int) (tea.Model, tea.Cmd) {
	next, ok := m.view.Directory.Neighbour(m.view.Session.ActivePatientID, offset)
	if !ok || next.ID == m.view.Session.ActivePatientID {
		return m, nil
	}

	m.view.Session.ActivePatientID = next.ID
	m.view.Load = domain.LoadingState(next.ID)
	return m, m.switchTo(next.ID)
}

func (m Model) activate() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	id := m.view.Session.ActivePatientID
	return func() tea.Msg {
		_, err := controller.Activate(ctx)
		return loadDoneMsg{patientID: id, err: err}
	}
}

func (m Model) switchTo(id domain.PatientID) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		_, err := controller.SwitchPatient(ctx, id)
		return loadDoneMsg{patientID: id, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return loggedOutMsg{err: controller.Logout(ctx)}
	}
}

func (m Model) View() string {
	if m.loggedOut {
		return ""
	}

	header := summary.HeaderFor(m.view.Session, m.view.Directory)
	load := m.view.Load

	var screen string
	switch {
	case load.Phase == domain.LoadFailed && load.PatientID == m.view.Session.ActivePatientID:
		screen = summary.ViewError(header, load.Message)
	case load.Phase == domain.LoadLoaded && load.Bundle != nil && load.PatientID == m.view.Session.ActivePatientID:
		if m.tab == TabDetails {
			screen = summary.ViewDetails(header, application.BuildDetails(*load.Bundle))
		} else {
			screen = summary.ViewOverview(header, application.BuildOverview(*load.Bundle))
		}
	default:
		screen = summary.ViewLoading(header, m.spinner.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, screen, m.help.Render(helpText))
}

func (m Model) Tab() Tab {
	return m.tab
}

// LoggedOut reports whether the browser exited through a successful logout.
func (m Model) LoggedOut() bool {
	return m.loggedOut
}

func (m Model) Err() error {
	return m.err
}

// Run starts the interactive browser and blocks until it exits.
func Run(ctx context.Context, controller Controller, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(ctx, controller), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return Model{}, err
	}

	result, ok := finalModel.(Model)
	if !ok {
		return Model{}, summary.ErrUnexpectedRenderModel
	}

	return result, result.err
}
