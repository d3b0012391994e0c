/*
Package tui is the terminal frontend of the tour.

The Model renders the whole page into a scrollable viewport. All widgets share
one virtual clock that the model advances on every frame tick, so playback,
settling delays and toasts run inside Update without extra goroutines.
*/
package tui

import (
	"log/slog"
	"time"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/notify"
	"github.com/aretw0/terminaltour/pkg/page"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval is the redraw period.
const DefaultFrameInterval = 20 * time.Millisecond

type tickMsg time.Time

// Model is the bubbletea model of the player.
type Model struct {
	page    domain.Page
	widgets []*widget
	clock   *clock.Virtual
	tracker *page.Tracker
	toaster *notify.Toaster
	copier  *notify.Copier

	viewport viewport.Model
	input    textinput.Model
	help     help.Model
	keys     KeyMap
	styles   styles
	md       *markdown
	logger   *slog.Logger

	interval  time.Duration
	mdStyle   string
	width     int
	height    int
	ready     bool
	typing    bool
	start     string
	quitting  bool
	seqOpts   []playback.Option
	shellOpts []shell.Option
	toastOpts []notify.ToastOption
	copyOpts  []notify.CopierOption
}

// Option configures the Model.
type Option func(*Model)

// WithFrameInterval sets the redraw period. Every frame advances the widget clock by the same amount.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithPlaybackOptions configures every Sequencer.
func WithPlaybackOptions(opts ...playback.Option) Option {
	return func(m *Model) {
		m.seqOpts = append(m.seqOpts, opts...)
	}
}

// WithShellOptions configures the toy shell.
func WithShellOptions(opts ...shell.Option) Option {
	return func(m *Model) {
		m.shellOpts = append(m.shellOpts, opts...)
	}
}

// WithToastOptions configures the page toast.
func WithToastOptions(opts ...notify.ToastOption) Option {
	return func(m *Model) {
		m.toastOpts = append(m.toastOpts, opts...)
	}
}

// WithCopierOptions configures clipboard access.
func WithCopierOptions(opts ...notify.CopierOption) Option {
	return func(m *Model) {
		m.copyOpts = append(m.copyOpts, opts...)
	}
}

// WithMarkdownStyle selects the glamour style ("auto", "dark", "light", "notty").
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		m.mdStyle = style
	}
}

// WithStartSection scrolls to a section once the window size is known.
func WithStartSection(id string) Option {
	return func(m *Model) {
		m.start = id
	}
}

// WithLogger configures a logger for the player.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New builds the player for pg. Every script the page references must resolve through loader.
func New(pg domain.Page, loader ports.ScriptLoader, opts ...Option) (Model, error) {
	m := Model{
		page:     pg,
		clock:    clock.NewVirtual(time.Now()),
		tracker:  page.NewTracker(nil),
		help:     help.New(),
		keys:     NewKeyMap(),
		styles:   defaultStyles(),
		logger:   logging.NewNop(),
		interval: DefaultFrameInterval,
		mdStyle:  "auto",
	}
	for _, opt := range opts {
		opt(&m)
	}

	seqOpts := append([]playback.Option{playback.WithLogger(m.logger)}, m.seqOpts...)
	shellOpts := append([]shell.Option{shell.WithLogger(m.logger)}, m.shellOpts...)
	widgets, err := newWidgets(pg, loader, m.clock, seqOpts, shellOpts)
	if err != nil {
		return Model{}, err
	}
	m.widgets = widgets

	m.toaster = notify.NewToaster(m.clock, m.toastOpts...)
	copyOpts := append([]notify.CopierOption{notify.WithLogger(m.logger)}, m.copyOpts...)
	m.copier = notify.NewCopier(m.toaster, copyOpts...)

	m.input = textinput.New()
	m.input.Prompt = "$ "
	m.input.Placeholder = "ls"
	m.input.CharLimit = shell.DefaultMaxInput

	m.md = newMarkdown(80, m.mdStyle)
	return m, nil
}

// Init implements tea.Model. Autoplay widgets start here, once.
func (m Model) Init() tea.Cmd {
	for _, w := range m.widgets {
		if w.seq != nil && w.section.Widget.Autoplay {
			w.seq.Play()
		}
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Close disposes every widget. Callbacks never fire afterwards.
func (m Model) Close() {
	for _, w := range m.widgets {
		w.dispose()
	}
	m.toaster.Dismiss()
}

// Active returns the section currently in view.
func (m Model) Active() string {
	return m.activeID()
}

func (m Model) activeID() string {
	if id := m.tracker.Active(); id != "" {
		return id
	}
	if len(m.page.Sections) > 0 {
		return m.page.Sections[0].ID
	}
	return ""
}

func (m Model) activeWidget() *widget {
	id := m.activeID()
	for _, w := range m.widgets {
		if w.section.ID == id {
			return w
		}
	}
	return nil
}

// refresh re-renders the document, keeping the scroll position.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	content, boxes := m.document()
	y := m.viewport.YOffset
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(y)
	m.tracker.SetLayout(boxes)
	m.tracker.Observe(m.viewport.YOffset, m.viewport.Height)
}

// jump scrolls so that section id sits at the top of the viewport.
func (m *Model) jump(id string) {
	if y, ok := m.tracker.Target(id); ok {
		m.viewport.SetYOffset(y)
		m.tracker.Observe(m.viewport.YOffset, m.viewport.Height)
		m.refresh()
	}
}
