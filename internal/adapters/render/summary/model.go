package summary

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/heihealth-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// model renders one screen and quits. It backs the non-interactive commands.
type model struct {
	view   func() string
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view()
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func render(view func() string) (string, error) {
	p := tea.NewProgram(
		model{view: view},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

func RenderOverview(h Header, overview application.Overview) (string, error) {
	return render(func() string { return ViewOverview(h, overview) })
}

func RenderDetails(h Header, details application.Details) (string, error) {
	return render(func() string { return ViewDetails(h, details) })
}

func RenderError(h Header, message string) (string, error) {
	return render(func() string { return ViewError(h, message) })
}

func RenderDirectory(h Header) (string, error) {
	return render(func() string { return ViewDirectory(h) })
}
