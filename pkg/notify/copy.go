package notify

import (
	"log/slog"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/atotto/clipboard"
)

// CopiedMessage is the toast shown after a successful copy.
const CopiedMessage = "Copied!"

// Copier writes text to the system clipboard and confirms through a Notifier.
type Copier struct {
	notifier ports.Notifier
	write    func(string) error
	logger   *slog.Logger
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithWriter replaces the clipboard writer (tests, headless sessions).
func WithWriter(write func(string) error) CopierOption {
	return func(c *Copier) {
		if write != nil {
			c.write = write
		}
	}
}

// WithLogger sets the logger used for clipboard failures.
func WithLogger(l *slog.Logger) CopierOption {
	return func(c *Copier) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCopier creates a Copier that reports to n.
func NewCopier(n ports.Notifier, opts ...CopierOption) *Copier {
	c := &Copier{
		notifier: n,
		write:    clipboard.WriteAll,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes text to the clipboard. Failures are logged and swallowed: the
// reader simply sees no confirmation. It reports whether the copy succeeded.
func (c *Copier) Copy(text string) bool {
	if err := c.write(text); err != nil {
		c.logger.Warn("clipboard write failed", "err", err)
		return false
	}
	if c.notifier != nil {
		c.notifier.Notify(CopiedMessage)
	}
	return true
}
