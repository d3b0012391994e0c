package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tour banner to w, colored when w is a color terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Clay to sand
	lines := []struct{ text, color string }{
		{"  _                      _             _   _                   ", "#d97757"},
		{" | |_ ___ _ __ _ __ ___ (_)_ __   __ _| | | |_ ___  _   _ _ __ ", "#dc8a6a"},
		{" | __/ _ \\ '__| '_ ` _ \\| | '_ \\ / _` | | | __/ _ \\| | | | '__|", "#e09d7e"},
		{" | ||  __/ |  | | | | | | | | | | (_| | | | || (_) | |_| | |   ", "#e4b092"},
		{"  \\__\\___|_|  |_| |_| |_|_|_| |_|\\__,_|_|  \\__\\___/ \\__,_|_|   ", "#e8c3a6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
