package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/google/uuid"
)

// DefaultFrameInterval is how far a widget clock moves per tick.
const DefaultFrameInterval = 20 * time.Millisecond

// DefaultBuffer is the number of frames queued per session.
const DefaultBuffer = 16

// ErrClosed is returned by Open once Shutdown has started.
var ErrClosed = errors.New("session manager is shut down")

// Manager tracks the live widget sessions of a server.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
	wg       sync.WaitGroup

	interval time.Duration
	buffer   int
	ticker   func(time.Duration) (<-chan time.Time, func())
	seqOpts  []playback.Option
	logger   *slog.Logger
	onOpen   func()
	onClose  func()
}

// Option configures the Manager.
type Option func(*Manager)

// WithFrameInterval sets the tick period of every widget clock.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithBuffer sets the per-session frame buffer.
func WithBuffer(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.buffer = n
		}
	}
}

// WithTicker replaces the real ticker. Every value received advances the
// widget clock by one frame interval. stop is called when the session ends.
func WithTicker(fn func(d time.Duration) (ticks <-chan time.Time, stop func())) Option {
	return func(m *Manager) {
		m.ticker = fn
	}
}

// WithPlaybackOptions configures every Sequencer the manager creates.
func WithPlaybackOptions(opts ...playback.Option) Option {
	return func(m *Manager) {
		m.seqOpts = append(m.seqOpts, opts...)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCallbacks registers functions run when a session opens and ends.
func WithCallbacks(onOpen, onClose func()) Option {
	return func(m *Manager) {
		m.onOpen = onOpen
		m.onClose = onClose
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		interval: DefaultFrameInterval,
		buffer:   DefaultBuffer,
		ticker:   realTicker,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// OpenRequest describes the widget being mounted.
type OpenRequest struct {
	Section string
	Script  domain.Script

	// Variants lists the script IDs the widget may switch to. Empty allows any.
	Variants []string
	Autoplay bool
}

// Open mounts a widget. The session lives until ctx is cancelled or Close is called.
func (m *Manager) Open(ctx context.Context, req OpenRequest) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       uuid.NewString(),
		Section:  req.Section,
		Variants: req.Variants,
		cmds:     make(chan command),
		frames:   make(chan domain.Frame, m.buffer),
		done:     make(chan struct{}),
		cancel:   cancel,
		logger:   m.logger,
	}

	// Add under mu: once closed is set, the WaitGroup never grows.
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	m.sessions[s.ID] = s
	m.wg.Add(2)
	m.mu.Unlock()

	clk := clock.NewVirtual(time.Now())
	opts := append([]playback.Option{playback.WithLogger(m.logger)}, m.seqOpts...)
	seq := playback.New(clk, req.Script, opts...)
	if req.Autoplay {
		seq.Play()
	}
	ticks, stop := m.ticker(m.interval)

	if m.onOpen != nil {
		m.onOpen()
	}
	m.logger.Debug("widget mounted", "session", s.ID, "section", req.Section, "script", req.Script.ID)

	go func() {
		defer m.wg.Done()
		s.run(ctx, seq, clk, ticks, m.interval)
	}()
	go func() {
		defer m.wg.Done()
		<-s.done
		stop()
		m.forget(s.ID)
	}()
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every session and waits for the actors to exit.
// Later calls to Open fail with ErrClosed.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	for _, s := range m.sessions {
		s.Close()
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok && m.onClose != nil {
		m.onClose()
	}
}
