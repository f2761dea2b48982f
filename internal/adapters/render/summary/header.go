package summary

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/heihealth-cli/internal/domain"
)

const (
	BrandName          = "HeiHealth"
	LoadingPatients    = "Loading patients..."
	NoPatients         = "No patients available"
	LoadingPatientData = "Loading patient data..."
)

// Header is the top bar shared by every screen.
type Header struct {
	Organization    string
	Directory       domain.PatientDirectory
	ActivePatientID domain.PatientID
}

func HeaderFor(session domain.Session, directory domain.PatientDirectory) Header {
	return Header{
		Organization:    session.Organization(),
		Directory:       directory,
		ActivePatientID: session.ActivePatientID,
	}
}

// SelectorText is what the patient selector shows for the current directory state.
func (h Header) SelectorText() string {
	if !h.Directory.Loaded {
		return LoadingPatients
	}
	if len(h.Directory.Entries) == 0 {
		return NoPatients
	}
	if entry, ok := h.Directory.Find(h.ActivePatientID); ok {
		return "Patient: " + entry.DisplayText()
	}
	return "Patient: " + string(h.ActivePatientID)
}

func renderHeader(h Header, s styles) string {
	parts := []string{s.brand.Render(BrandName)}
	if org := strings.TrimSpace(h.Organization); org != "" {
		parts = append(parts, s.org.Render(domain.OrganizationLabel(org)))
	}

	selector := s.selector
	if !h.Directory.Loaded || len(h.Directory.Entries) == 0 {
		selector = s.faint
	}
	parts = append(parts, selector.Render(h.SelectorText()))

	return strings.Join(parts, s.faint.Render("  |  "))
}

func withHeader(h Header, s styles, body ...string) string {
	lines := append([]string{renderHeader(h, s)}, body...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
