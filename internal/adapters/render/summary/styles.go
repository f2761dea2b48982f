package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	brand      lipgloss.Style
	org        lipgloss.Style
	selector   lipgloss.Style
	faint      lipgloss.Style
	title      lipgloss.Style
	subtitle   lipgloss.Style
	section    lipgloss.Style
	heading    lipgloss.Style
	card       lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	unit       lipgloss.Style
	badge      lipgloss.Style
	badgeMuted lipgloss.Style
	errorBox   lipgloss.Style
	errorLabel lipgloss.Style
	loading    lipgloss.Style
	active     lipgloss.Style
}

func newStyles() styles {
	return styles{
		brand:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		org:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selector:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		faint:      lipgloss.NewStyle().Faint(true),
		title:      lipgloss.NewStyle().Bold(true),
		subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		unit:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		badgeMuted: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errorBox:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("203")).Padding(0, 1),
		errorLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		loading:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		active:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
	}
}
