package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a markdown renderer wrapping at width. style is a glamour
// standard style name ("dark", "light", "notty"); "" or "auto" detects the background.
func NewRenderer(width int, style string) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// markdown memoizes rendered prose. Section text never changes while the
// width stays the same, and glamour is too slow to run on every frame.
type markdown struct {
	render func(string) (string, error)
	cache  map[string]string
}

func newMarkdown(width int, style string) *markdown {
	return &markdown{render: NewRenderer(width, style), cache: make(map[string]string)}
}

func (m *markdown) Render(text string) string {
	if out, ok := m.cache[text]; ok {
		return out
	}
	out, err := m.render(text)
	if err != nil {
		out = text
	}
	out = strings.Trim(out, "\n")
	m.cache[text] = out
	return out
}
