package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/terminaltour/internal/presentation/tui"
	"github.com/aretw0/terminaltour/pkg/notify"
	"github.com/aretw0/terminaltour/pkg/page"
	"github.com/aretw0/terminaltour/pkg/shell"
	tea "github.com/charmbracelet/bubbletea"
)

// PlayOptions control `tour play`.
type PlayOptions struct {
	// Section scrolls the player to a section on start.
	Section string

	// Script plays a single script to stdout and exits.
	Script string

	// Plain streams the whole tour to stdout instead of opening the player.
	// It is implied when stdout is not a terminal.
	Plain bool

	// Instant skips the frame delay of plain output.
	Instant bool

	// Style is the glamour style for prose.
	Style string
}

// RunPlay opens the interactive player, or streams the tour as text.
func RunPlay(ctx context.Context, opts Options, p PlayOptions) error {
	logger := createLogger(opts.Debug)
	t, cfg, err := load(opts, logger)
	if err != nil {
		return err
	}
	if p.Section != "" {
		if _, err := page.Section(t.Page, p.Section); err != nil {
			return err
		}
	}

	out := opts.out()
	width, tty := terminalWidth(out)
	if p.Plain || p.Script != "" || !tty {
		style := p.Style
		if style == "" && !tty {
			style = "notty"
		}
		if width == 0 {
			width = 80
		}

		twOpts := []tui.TypewriterOption{tui.WithTypewriterPlayback(cfg.PlaybackOptions()...)}
		if p.Instant {
			twOpts = append(twOpts, tui.WithSleep(func(time.Duration) {}))
		}
		tw := tui.NewTypewriter(out, twOpts...)

		if p.Script != "" {
			s, err := t.Scripts.GetScript(p.Script)
			if err != nil {
				return err
			}
			return ignoreCancel(tw.Play(ctx, s))
		}

		render := tui.NewRenderer(min(width, 100), style)
		tui.PrintBanner(out)
		return ignoreCancel(tw.Page(ctx, t.Page, t.Scripts.GetScript, func(md string) string {
			r, err := render(md)
			if err != nil {
				return md
			}
			return r
		}))
	}

	model, err := tui.New(t.Page, t.Scripts,
		tui.WithLogger(logger),
		tui.WithPlaybackOptions(cfg.PlaybackOptions()...),
		tui.WithShellOptions(shell.WithMaxInput(cfg.Shell.MaxInput)),
		tui.WithToastOptions(notify.WithDuration(cfg.Toast.Duration.Std())),
		tui.WithStartSection(p.Section),
		tui.WithMarkdownStyle(p.Style),
	)
	if err != nil {
		return err
	}
	defer model.Close()

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	final, err := prog.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("player failed: %w", err)
	}
	return nil
}

// ignoreCancel treats an interrupt as a clean exit.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
