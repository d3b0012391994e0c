package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/muesli/termenv"
)

// Typewriter plays scripts to a plain writer, one character batch per frame.
// It is used when stdout is not a terminal and by `tour play --plain`.
type Typewriter struct {
	out      *termenv.Output
	w        io.Writer
	interval time.Duration
	sleep    func(time.Duration)
	seqOpts  []playback.Option
}

// TypewriterOption configures a Typewriter.
type TypewriterOption func(*Typewriter)

// WithSleep replaces time.Sleep between frames. Tests pass a no-op.
func WithSleep(fn func(time.Duration)) TypewriterOption {
	return func(t *Typewriter) {
		t.sleep = fn
	}
}

// WithTypewriterInterval sets the frame period.
func WithTypewriterInterval(d time.Duration) TypewriterOption {
	return func(t *Typewriter) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTypewriterPlayback configures the Sequencer used for each script.
func WithTypewriterPlayback(opts ...playback.Option) TypewriterOption {
	return func(t *Typewriter) {
		t.seqOpts = append(t.seqOpts, opts...)
	}
}

// NewTypewriter creates a Typewriter on w. Colors follow w's capabilities.
func NewTypewriter(w io.Writer, opts ...TypewriterOption) *Typewriter {
	t := &Typewriter{
		out:      termenv.NewOutput(w),
		w:        w,
		interval: DefaultFrameInterval,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// cursor tracks what has already been written.
type cursor struct {
	index int
	runes int
	pass  int
	done  bool
}

// Play streams script until it completes or ctx is cancelled.
func (t *Typewriter) Play(ctx context.Context, script domain.Script) error {
	clk := clock.NewVirtual(time.Now())
	seq := playback.New(clk, script, t.seqOpts...)
	defer seq.Dispose()

	if script.Title != "" {
		fmt.Fprintln(t.w, t.out.String(script.Title).Bold())
	}
	if script.Request != "" {
		fmt.Fprintln(t.w, "> "+script.Request)
	}

	cur := cursor{index: -1, pass: 1}
	seq.Play()
	for {
		t.flush(seq.Frame(), &cur)
		if seq.State().Done() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(t.w)
			return err
		}
		t.sleep(t.interval)
		clk.Advance(t.interval)
	}
}

// flush writes whatever the frame reveals beyond cur.
func (t *Typewriter) flush(f domain.Frame, cur *cursor) {
	if f.State.Pass != cur.pass {
		cur.pass = f.State.Pass
		cur.index, cur.runes, cur.done = -1, 0, false
		fmt.Fprintln(t.w, t.out.String(fmt.Sprintf("↻ pass %d of %d", f.State.Pass, f.State.Passes)).Faint())
	}

	for i, rt := range f.Turns {
		if i < cur.index || (i == cur.index && cur.done) {
			continue
		}
		if i > cur.index {
			cur.index, cur.runes, cur.done = i, 0, false
			fmt.Fprint(t.w, t.label(rt.Turn))
		}
		visible := []rune(rt.Visible)
		if len(visible) > cur.runes {
			fmt.Fprint(t.w, t.color(rt.Role, string(visible[cur.runes:])))
			cur.runes = len(visible)
		}
		if rt.Complete {
			fmt.Fprintln(t.w)
			for _, blk := range rt.Blocks {
				t.block(blk)
			}
			cur.done = true
		}
	}
}

func (t *Typewriter) label(turn domain.Turn) string {
	l := marker(turn)
	if turn.Label != "" {
		l += turn.Label + ": "
	}
	return t.out.String(l).Foreground(t.out.Color("#d97757")).String()
}

func (t *Typewriter) color(r domain.Role, text string) string {
	s := t.out.String(text)
	switch r {
	case domain.RoleUser, domain.RoleInput:
		s = s.Bold()
	case domain.RoleAction:
		s = s.Foreground(t.out.Color("#88b07e"))
	case domain.RoleSystem, domain.RoleOutput:
		s = s.Faint()
	}
	return s.String()
}

func (t *Typewriter) block(b domain.Block) {
	if b.Title != "" {
		fmt.Fprintln(t.w, "    "+b.Title)
	}
	for i, l := range b.Lines {
		prefix := "• "
		switch b.Kind {
		case domain.BlockSteps:
			prefix = fmt.Sprintf("%d. ", i+1)
		case domain.BlockFiles:
			prefix = "+ "
		case domain.BlockCode, domain.BlockNote:
			prefix = ""
		}
		fmt.Fprintln(t.w, t.out.String("    "+prefix+l).Faint())
	}
}

// Page writes the section prose and plays every playback widget in order.
func (t *Typewriter) Page(ctx context.Context, pg domain.Page, scripts func(string) (domain.Script, error), render func(string) string) error {
	fmt.Fprintln(t.w, t.out.String(pg.Title).Bold())
	fmt.Fprintln(t.w, pg.Tagline)
	for _, sec := range pg.Sections {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, t.out.String(sec.Number+" "+sec.Title).Bold())
		fmt.Fprintln(t.w, strings.TrimSpace(render(sec.Description)))

		switch sec.Widget.Kind {
		case domain.WidgetPlayback, domain.WidgetSteps:
			for _, id := range sec.Widget.Scripts {
				s, err := scripts(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(t.w)
				if err := t.Play(ctx, s); err != nil {
					return err
				}
			}
		case domain.WidgetCopy:
			for _, it := range sec.Widget.Items {
				fmt.Fprintf(t.w, "  %s\n    %s\n", it.Label, it.Command)
			}
		}
		if sec.Widget.Tip != "" {
			fmt.Fprintln(t.w, t.out.String("│ "+sec.Widget.Tip).Faint())
		}
	}
	return nil
}
