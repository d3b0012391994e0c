package tui

import (
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	clay  = lipgloss.Color("#d97757")
	muted = lipgloss.Color("#8a8780")
	ivory = lipgloss.Color("#f5f4ed")
	sage  = lipgloss.Color("#88b07e")
)

type styles struct {
	Title     lipgloss.Style
	Number    lipgloss.Style
	TOC       lipgloss.Style
	TOCActive lipgloss.Style
	Widget    lipgloss.Style
	Focused   lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Block     lipgloss.Style
	Hint      lipgloss.Style
	Tip       lipgloss.Style
	Toast     lipgloss.Style
	Cursor    lipgloss.Style
	roles     map[domain.Role]lipgloss.Style
}

func defaultStyles() styles {
	widget := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Number:    lipgloss.NewStyle().Foreground(clay),
		TOC:       lipgloss.NewStyle().Foreground(muted),
		TOCActive: lipgloss.NewStyle().Foreground(clay).Bold(true),
		Widget:    widget,
		Focused:   widget.BorderForeground(clay),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(clay).Underline(true).Padding(0, 1),
		Block:     lipgloss.NewStyle().Foreground(muted).PaddingLeft(2),
		Hint:      lipgloss.NewStyle().Foreground(muted).Italic(true),
		Tip:       lipgloss.NewStyle().Foreground(muted).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(clay).PaddingLeft(1),
		Toast:     lipgloss.NewStyle().Foreground(ivory).Background(clay).Padding(0, 1),
		Cursor:    lipgloss.NewStyle().Foreground(clay),
		roles: map[domain.Role]lipgloss.Style{
			domain.RoleUser:      lipgloss.NewStyle().Bold(true),
			domain.RoleAssistant: lipgloss.NewStyle(),
			domain.RoleAction:    lipgloss.NewStyle().Foreground(sage),
			domain.RoleSystem:    lipgloss.NewStyle().Foreground(muted).Italic(true),
			domain.RoleInput:     lipgloss.NewStyle().Bold(true),
			domain.RoleOutput:    lipgloss.NewStyle().Foreground(muted),
		},
	}
}

func (s styles) Role(r domain.Role) lipgloss.Style {
	return s.roles[r]
}

// marker is the gutter shown before a turn.
func marker(t domain.Turn) string {
	switch t.Role {
	case domain.RoleUser:
		return "> "
	case domain.RoleAssistant:
		return "● "
	case domain.RoleAction:
		return "⎿ "
	case domain.RoleInput:
		return "$ "
	}
	return "  "
}
