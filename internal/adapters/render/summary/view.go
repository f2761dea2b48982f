package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/heihealth-cli/internal/application"
)

func ViewOverview(h Header, overview application.Overview) string {
	s := newStyles()
	return withHeader(h, s, overviewBody(overview, s)...)
}

func ViewDetails(h Header, details application.Details) string {
	s := newStyles()
	return withHeader(h, s, detailsBody(details, s)...)
}

// ViewError renders the single error banner that replaces every section after a failed load.
func ViewError(h Header, message string) string {
	s := newStyles()
	banner := s.errorBox.Render(s.errorLabel.Render("Error:") + " " + message)
	return withHeader(h, s, s.section.Render(banner))
}

func ViewLoading(h Header, spinner string) string {
	s := newStyles()
	text := LoadingPatientData
	if spinner != "" {
		text = spinner + " " + text
	}
	return withHeader(h, s, s.section.Render(s.loading.Render(text)))
}

func ViewDirectory(h Header) string {
	s := newStyles()
	if !h.Directory.Loaded || len(h.Directory.Entries) == 0 {
		return withHeader(h, s)
	}

	lines := make([]string, 0, len(h.Directory.Entries))
	for _, entry := range h.Directory.Entries {
		if entry.ID == h.ActivePatientID {
			lines = append(lines, s.active.Render(fmt.Sprintf("> %s  %s", entry.ID, entry.DisplayText())))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", entry.ID, entry.DisplayText()))
	}

	return withHeader(h, s, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func overviewBody(overview application.Overview, s styles) []string {
	body := []string{s.section.Render(pageHeader(overview.Title, overview.Subtitle, s))}

	body = append(body, s.section.Render(s.card.Render(infoCard("Patient Information", overview.PatientInfo, s))))

	metrics := []string{s.heading.Render("Key Metrics")}
	for _, metric := range overview.Metrics {
		metrics = append(metrics, metricLine(metric, s))
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, metrics...)))

	if overview.ActiveConditions.Shown {
		lines := []string{s.heading.Render("Active Conditions")}
		if len(overview.ActiveConditions.Items) == 0 {
			lines = append(lines, s.faint.Render(overview.ActiveConditions.Message))
		}
		for _, condition := range overview.ActiveConditions.Items {
			lines = append(lines, fmt.Sprintf("- %s  %s", condition.Name, s.badge.Render(condition.Status)))
		}
		body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	if !overview.Observations.Empty() {
		lines := []string{s.heading.Render("Recent Vital Signs")}
		lines = append(lines, observationLines(overview.Observations, s)...)
		body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	return body
}

func detailsBody(details application.Details, s styles) []string {
	body := []string{s.section.Render(pageHeader(details.Title, "", s))}

	conditions := listSection(details.Conditions.Title, details.Conditions.Message, s)
	for _, item := range details.Conditions.Items {
		meta := []string{statusBadge(item.Status, s)}
		if item.Onset != "" {
			meta = append(meta, "Onset: "+item.Onset)
		}
		if item.Recorded != "" {
			meta = append(meta, "Recorded: "+item.Recorded)
		}
		conditions = append(conditions, itemLine(item.Name, meta, s))
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, conditions...)))

	immunizations := listSection(details.Immunizations.Title, details.Immunizations.Message, s)
	for _, item := range details.Immunizations.Items {
		meta := []string{"Date: " + item.Date}
		if item.Dose != "" {
			meta = append(meta, "Dose: "+item.Dose)
		}
		meta = append(meta, s.badge.Render(item.Status))
		immunizations = append(immunizations, itemLine(item.Name, meta, s))
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, immunizations...)))

	procedures := listSection(details.Procedures.Title, details.Procedures.Message, s)
	for _, item := range details.Procedures.Items {
		var meta []string
		if item.Date != "" {
			meta = append(meta, "Date: "+item.Date)
		}
		if item.Reason != "" {
			meta = append(meta, "Reason: "+item.Reason)
		}
		meta = append(meta, s.badge.Render(item.Status))
		procedures = append(procedures, itemLine(item.Name, meta, s))
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, procedures...)))

	plans := listSection(details.CarePlans.Title, details.CarePlans.Message, s)
	for _, item := range details.CarePlans.Items {
		var meta []string
		if item.Created != "" {
			meta = append(meta, "Created: "+item.Created)
		}
		meta = append(meta, s.badge.Render(item.Status))
		plans = append(plans, itemLine(item.Title, meta, s))
		for _, activity := range item.Activities {
			plans = append(plans, "    * "+activity.Name)
			if activity.Description != "" {
				plans = append(plans, s.faint.Render("      "+activity.Description))
			}
		}
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, plans...)))

	observations := []string{s.heading.Render("All Observations")}
	if details.ObservationsMessage != "" {
		observations = append(observations, s.faint.Render(details.ObservationsMessage))
	} else {
		observations = append(observations, observationLines(details.Observations, s)...)
	}
	body = append(body, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, observations...)))

	return body
}

func pageHeader(title, subtitle string, s styles) string {
	lines := []string{s.title.Render(title)}
	if subtitle != "" {
		lines = append(lines, s.subtitle.Render(subtitle))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func infoCard(title string, fields []application.InfoField, s styles) string {
	width := 0
	for _, field := range fields {
		width = max(width, lipgloss.Width(field.Label))
	}

	lines := []string{s.heading.Render(title)}
	for _, field := range fields {
		label := field.Label + strings.Repeat(" ", width-lipgloss.Width(field.Label))
		lines = append(lines, s.label.Render(label)+"  "+s.value.Render(field.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func metricLine(metric application.Metric, s styles) string {
	return fmt.Sprintf("%-16s %s %s", metric.Title, s.value.Render(metric.Value), s.unit.Render(metric.Unit))
}

func listSection(title, message string, s styles) []string {
	lines := []string{s.heading.Render(title)}
	if message != "" {
		lines = append(lines, s.faint.Render(message))
	}
	return lines
}

func itemLine(name string, meta []string, s styles) string {
	if len(meta) == 0 {
		return "- " + s.value.Render(name)
	}
	return "- " + s.value.Render(name) + "  " + strings.Join(meta, "  ")
}

func statusBadge(status string, s styles) string {
	if status == "active" {
		return s.badge.Render(status)
	}
	return s.badgeMuted.Render(status)
}

func observationLines(section application.ObservationSection, s styles) []string {
	var lines []string
	if len(section.VitalSigns) > 0 {
		lines = append(lines, s.label.Render("Vital Signs"))
		for _, row := range section.VitalSigns {
			lines = append(lines, observationLine(row, s))
		}
	}
	if len(section.Laboratory) > 0 {
		lines = append(lines, s.label.Render("Laboratory Results"))
		for _, row := range section.Laboratory {
			lines = append(lines, observationLine(row, s))
		}
	}
	if section.Uncategorized > 0 {
		lines = append(lines, s.faint.Render(fmt.Sprintf("%d observation(s) outside vital signs and laboratory not shown", section.Uncategorized)))
	}
	return lines
}

func observationLine(row application.ObservationRow, s styles) string {
	parts := []string{"- " + row.Name, s.value.Render(row.Value)}
	if row.Unit != "" {
		parts = append(parts, s.unit.Render(row.Unit))
	}
	if row.Interpretation != "" {
		style := s.badgeMuted
		if row.Interpretation == "High" {
			style = s.badge
		}
		parts = append(parts, style.Render(row.Interpretation))
	}
	if row.Date != "" {
		parts = append(parts, s.faint.Render(row.Date))
	}
	return strings.Join(parts, " ")
}
