// Package cli implements the tour commands. cmd/tour only parses flags.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tour "github.com/aretw0/terminaltour"
	"github.com/aretw0/terminaltour/internal/config"
	"github.com/aretw0/terminaltour/internal/logging"
	"golang.org/x/term"
)

// Options are the settings shared by every command.
type Options struct {
	ConfigPath string
	ScriptsDir string
	Debug      bool

	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (stdout belongs to the tour).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// load reads the configuration and the tour content.
func load(opts Options, logger *slog.Logger) (*tour.Tour, config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	tourOpts := []tour.Option{tour.WithLogger(logger)}
	if opts.ScriptsDir != "" {
		tourOpts = append(tourOpts, tour.WithScriptsDir(opts.ScriptsDir))
	}
	t, err := tour.New(tourOpts...)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("error loading tour: %w", err)
	}
	return t, cfg, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
