package tui

import (
	"fmt"

	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/aretw0/terminaltour/pkg/shell"
)

// widget is the live part of one section. Exactly one of seq, term or the
// copy items is in use, depending on the section's widget kind.
type widget struct {
	section domain.Section
	scripts []domain.Script
	variant int
	seq     *playback.Sequencer
	term    *shell.Transcript
	item    int
}

func newWidgets(pg domain.Page, loader ports.ScriptLoader, clk clock.Clock, seqOpts []playback.Option, shellOpts []shell.Option) ([]*widget, error) {
	widgets := make([]*widget, 0, len(pg.Sections))
	for _, sec := range pg.Sections {
		w := &widget{section: sec}

		switch sec.Widget.Kind {
		case domain.WidgetPlayback, domain.WidgetSteps:
			for _, id := range sec.Widget.Scripts {
				s, err := loader.GetScript(id)
				if err != nil {
					return nil, fmt.Errorf("section %s: %w", sec.ID, err)
				}
				w.scripts = append(w.scripts, s)
			}
			if len(w.scripts) > 0 {
				w.seq = playback.New(clk, w.scripts[0], seqOpts...)
			}
		case domain.WidgetShell:
			w.term = shell.NewTranscript(shell.New(shellOpts...))
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}

// nextVariant selects the following script tab, wrapping around.
func (w *widget) nextVariant() bool {
	if w.seq == nil || len(w.scripts) < 2 {
		return false
	}
	w.variant = (w.variant + 1) % len(w.scripts)
	w.seq.Select(w.scripts[w.variant])
	return true
}

// moveItem changes the selected copy item by delta, clamped.
func (w *widget) moveItem(delta int) {
	n := len(w.section.Widget.Items)
	if n == 0 {
		return
	}
	w.item = min(max(w.item+delta, 0), n-1)
}

func (w *widget) dispose() {
	if w.seq != nil {
		w.seq.Dispose()
	}
}
