package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RunTOC prints the table of contents.
func RunTOC(opts Options) error {
	t, _, err := load(opts, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(t.Page.Sections))
	for _, sec := range t.Page.Sections {
		widget := string(sec.Widget.Kind)
		if widget == "" {
			widget = "-"
		}
		rows = append(rows, []string{sec.Number, sec.ID, sec.Title, widget, strings.Join(sec.Widget.Scripts, ", ")})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "TITLE", "WIDGET", "SCRIPTS").
		Rows(rows...)

	fmt.Fprintln(opts.out(), tbl.String())
	return nil
}
