package tui

import (
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chrome is the number of rows used by the TOC line and the status line.
const chrome = 2

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.md = newMarkdown(max(msg.Width-6, 20), m.mdStyle)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-chrome, 1))
			m.ready = true
			m.refresh()
			if m.start != "" {
				m.jump(m.start)
				m.start = ""
			}
			return m, nil
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.refresh()
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.clock.Advance(m.interval)
		m.refresh()
		return m, m.tick()

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.activeWidget()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if m.ready {
			m.viewport.Height = max(m.height-chrome-(lipgloss.Height(m.help.View(m.keys))-1), 1)
		}

	case key.Matches(msg, m.keys.Jump):
		n := int(msg.String()[0] - '0')
		if n < len(m.page.Sections) {
			m.jump(m.page.Sections[n].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if w != nil && w.seq != nil {
			w.seq.Toggle()
		}

	case key.Matches(msg, m.keys.Reset):
		if w != nil && w.seq != nil {
			w.seq.Reset()
		}

	case key.Matches(msg, m.keys.Forward):
		switch {
		case w == nil:
		case w.seq != nil:
			w.seq.StepForward()
		case w.section.Widget.Kind == domain.WidgetCopy:
			w.moveItem(1)
		}

	case key.Matches(msg, m.keys.Back):
		switch {
		case w == nil:
		case w.seq != nil:
			w.seq.StepBack()
		case w.section.Widget.Kind == domain.WidgetCopy:
			w.moveItem(-1)
		}

	case key.Matches(msg, m.keys.Variant):
		if w != nil {
			w.nextVariant()
		}

	case key.Matches(msg, m.keys.Type):
		if w != nil && w.term != nil {
			m.typing = true
			m.input.Reset()
			m.refresh()
			return m, m.input.Focus()
		}

	case key.Matches(msg, m.keys.Copy):
		if w != nil && w.section.Widget.Kind == domain.WidgetCopy && len(w.section.Widget.Items) > 0 {
			m.copier.Copy(w.section.Widget.Items[w.item].Command)
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.tracker.Observe(m.viewport.YOffset, m.viewport.Height)
		m.refresh()
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.typing = false
		m.input.Blur()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if w := m.activeWidget(); w != nil && w.term != nil {
			res := w.term.Submit(m.input.Value())
			if res.Command != "" {
				m.logger.Debug("shell command", "command", res.Command)
			}
		}
		m.input.Reset()
		m.refresh()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}
