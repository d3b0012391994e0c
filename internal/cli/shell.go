package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/terminaltour/internal/config"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/muesli/termenv"
)

// RunShell runs the practice terminal as a line-based REPL on in.
// It returns when in is exhausted, on "exit" or "quit", or when ctx is done.
func RunShell(ctx context.Context, opts Options, in io.Reader) error {
	logger := createLogger(opts.Debug)
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	w := opts.out()
	out := termenv.NewOutput(w)
	tr := shell.NewTranscript(shell.New(
		shell.WithMaxInput(cfg.Shell.MaxInput),
		shell.WithLogger(logger),
	))

	printLines(w, out, tr.Lines())
	fmt.Fprintln(w, out.String(tr.Hint()).Faint())

	lines := readLines(ctx, in)
	for {
		fmt.Fprint(w, out.String(tr.State().Cwd).Foreground(out.Color("#d97757")), " $ ")

		var raw string
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				return nil
			}
			raw = l
		}

		switch strings.TrimSpace(raw) {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return nil
		}

		res := tr.Submit(raw)
		if res.Command == "" {
			continue
		}
		if res.Clear {
			out.ClearScreen()
		}
		printLines(w, out, res.Lines)
		if res.Hint != "" {
			fmt.Fprintln(w, out.String(res.Hint).Faint())
		}
	}
}

// readLines pumps in into a channel so a blocked read never holds up shutdown.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func printLines(w io.Writer, out *termenv.Output, lines []shell.Line) {
	for _, l := range lines {
		if l.Role == domain.RoleInput {
			fmt.Fprintln(w, out.String(l.Text).Bold())
			continue
		}
		fmt.Fprintln(w, l.Text)
	}
}
