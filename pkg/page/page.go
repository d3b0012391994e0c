// Package page assembles the tour document and tracks which section is in view.
package page

import (
	"errors"
	"fmt"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/ports"
)

// Section returns the section with the given ID.
func Section(p domain.Page, id string) (domain.Section, error) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Section{}, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, id)
}

// Index returns the position of section id, or -1.
func Index(p domain.Page, id string) int {
	for i, s := range p.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Scripts returns every script ID referenced by the page, in document order.
func Scripts(p domain.Page) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range p.Sections {
		for _, id := range s.Widget.Scripts {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Validate checks that section IDs are unique, widgets are well formed and
// every referenced script resolves through loader. All problems are reported.
func Validate(p domain.Page, loader ports.ScriptLoader) error {
	var errs []error
	seen := make(map[string]bool)

	for _, s := range p.Sections {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("section %q: missing id", s.Title))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("section %s: duplicate id", s.ID))
		}
		seen[s.ID] = true

		w := s.Widget
		switch w.Kind {
		case domain.WidgetPlayback, domain.WidgetSteps:
			if len(w.Scripts) == 0 {
				errs = append(errs, fmt.Errorf("section %s: %s widget without scripts", s.ID, w.Kind))
			}
		case domain.WidgetCopy:
			if len(w.Items) == 0 {
				errs = append(errs, fmt.Errorf("section %s: copy widget without items", s.ID))
			}
		case domain.WidgetShell, domain.WidgetNone:
		default:
			errs = append(errs, fmt.Errorf("section %s: unknown widget kind %q", s.ID, w.Kind))
		}

		for _, id := range w.Scripts {
			if _, err := loader.GetScript(id); err != nil {
				errs = append(errs, fmt.Errorf("section %s: %w", s.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}
