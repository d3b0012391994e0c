package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/page"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tocView(),
		m.viewport.View(),
		m.statusView(),
	)
}

func (m Model) tocView() string {
	active := m.activeID()
	parts := make([]string, 0, len(m.page.Sections))
	for _, sec := range m.page.Sections {
		label := sec.Number + " " + sec.Short
		if sec.ID == active {
			parts = append(parts, m.styles.TOCActive.Render(label))
		} else {
			parts = append(parts, m.styles.TOC.Render(label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) statusView() string {
	if msg := m.toaster.Message(); msg != "" {
		return m.styles.Toast.Render(msg)
	}
	if m.typing {
		return m.input.View()
	}
	return m.help.View(m.keys)
}

// document renders every section and reports where each one starts.
func (m Model) document() (string, []page.Box) {
	var b strings.Builder
	boxes := make([]page.Box, 0, len(m.widgets))
	line := 0

	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		line += lipgloss.Height(s)
	}

	write(m.styles.Title.Render(m.page.Title))
	write(m.styles.Hint.Render(m.page.Tagline))
	write("")

	active := m.activeID()
	for _, w := range m.widgets {
		top := line
		write(m.sectionView(w, w.section.ID == active))
		write("")
		boxes = append(boxes, page.Box{ID: w.section.ID, Top: top, Height: line - top})
	}

	if len(m.page.Footer) > 0 {
		links := make([]string, len(m.page.Footer))
		for i, l := range m.page.Footer {
			links[i] = l.Label + " " + m.styles.Hint.Render(l.URL)
		}
		write(strings.Join(links, "   "))
	}
	// room to scroll the last section to the top
	b.WriteString(strings.Repeat("\n", max(m.viewport.Height-1, 0)))
	return b.String(), boxes
}

func (m Model) sectionView(w *widget, focused bool) string {
	sec := w.section
	parts := []string{
		m.styles.Number.Render(sec.Number) + " " + m.styles.Title.Render(sec.Title),
		m.md.Render(sec.Description),
	}

	box := m.styles.Widget
	if focused {
		box = m.styles.Focused
	}
	inner := max(m.width-4, 10)

	switch sec.Widget.Kind {
	case domain.WidgetPlayback, domain.WidgetSteps:
		if w.seq != nil {
			parts = append(parts, box.Width(inner).Render(m.playbackView(w, inner-2)))
		}
	case domain.WidgetShell:
		parts = append(parts, box.Width(inner).Render(m.shellView(w, focused)))
	case domain.WidgetCopy:
		parts = append(parts, box.Width(inner).Render(m.copyView(w)))
	}

	if sec.Widget.Tip != "" {
		parts = append(parts, m.styles.Tip.Width(inner).Render(sec.Widget.Tip))
	}
	return strings.Join(parts, "\n")
}

func (m Model) playbackView(w *widget, width int) string {
	var rows []string

	if len(w.scripts) > 1 {
		tabs := make([]string, len(w.scripts))
		for i, s := range w.scripts {
			label := s.Title
			if label == "" {
				label = s.ID
			}
			if i == w.variant {
				tabs[i] = m.styles.TabActive.Render(label)
			} else {
				tabs[i] = m.styles.Tab.Render(label)
			}
		}
		rows = append(rows, strings.Join(tabs, " "), "")
	}

	f := w.seq.Frame()
	if s := w.seq.Script(); s.Request != "" {
		rows = append(rows, m.styles.Role(domain.RoleUser).Render("> "+s.Request), "")
	}
	for _, t := range f.Turns {
		rows = append(rows, m.turnView(t, width))
	}
	rows = append(rows, "", m.styles.Hint.Render(m.controlsHint(w, f.State)))
	return strings.Join(rows, "\n")
}

func (m Model) turnView(t domain.RevealedTurn, width int) string {
	text := t.Visible
	if t.Streaming {
		text += m.styles.Cursor.Render("▌")
	}
	label := marker(t.Turn)
	if t.Label != "" {
		label += t.Label + ": "
	}
	row := m.styles.Role(t.Role).Width(width).Render(label + text)
	if !t.Complete {
		return row
	}

	rows := []string{row}
	for _, blk := range t.Blocks {
		if blk.Title != "" {
			rows = append(rows, m.styles.Block.Render(blk.Title))
		}
		for i, l := range blk.Lines {
			bullet := "• "
			switch blk.Kind {
			case domain.BlockSteps:
				bullet = fmt.Sprintf("%d. ", i+1)
			case domain.BlockFiles:
				bullet = "+ "
			case domain.BlockCode, domain.BlockNote:
				bullet = ""
			}
			rows = append(rows, m.styles.Block.Render(bullet+l))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) controlsHint(w *widget, st domain.Playback) string {
	if w.section.Widget.Kind == domain.WidgetSteps {
		step := min(st.Index+1, st.Total)
		if st.Phase == domain.PhaseIdle {
			step = 0
		}
		return fmt.Sprintf("Step %d of %d   ← back  → next", step, st.Total)
	}

	var hint string
	switch st.Phase {
	case domain.PhaseStreaming:
		hint = "space pause"
	case domain.PhaseComplete:
		hint = "space replay"
	default:
		hint = "space play"
	}
	hint += "   r reset   ←/→ step"
	if len(w.scripts) > 1 {
		hint += "   tab switch"
	}
	if st.Passes > 1 {
		hint += fmt.Sprintf("   pass %d/%d", st.Pass, st.Passes)
	}
	return hint
}

func (m Model) shellView(w *widget, focused bool) string {
	rows := make([]string, 0, len(w.term.Lines())+2)
	for _, l := range w.term.Lines() {
		rows = append(rows, m.lineView(l))
	}
	if focused && m.typing {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, m.styles.Hint.Render("$ press i to type"))
	}
	rows = append(rows, "", m.styles.Hint.Render(w.term.Hint()))
	return strings.Join(rows, "\n")
}

func (m Model) lineView(l shell.Line) string {
	return m.styles.Role(l.Role).Render(l.Text)
}

func (m Model) copyView(w *widget) string {
	items := w.section.Widget.Items
	rows := make([]string, 0, len(items)*2+2)
	for i, it := range items {
		cursor := "  "
		if i == w.item {
			cursor = m.styles.Cursor.Render("› ")
		}
		rows = append(rows, cursor+m.styles.Hint.Render(it.Label))
		rows = append(rows, "  "+it.Command)
		if it.Note != "" {
			rows = append(rows, "  "+m.styles.Hint.Render(it.Note))
		}
	}
	rows = append(rows, "", m.styles.Hint.Render("←/→ choose   c copy"))
	return strings.Join(rows, "\n")
}
