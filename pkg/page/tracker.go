package page

// Observation band, as fractions of the viewport height measured from its top.
// A section is "in view" while it overlaps this band.
const (
	bandTop    = 20
	bandBottom = 30
)

// Box is the vertical extent of a section in document units (rows, pixels).
type Box struct {
	ID     string
	Top    int
	Height int
}

// Tracker maps a scroll position to the active section for the table of contents.
type Tracker struct {
	layout []Box
	active string
}

// NewTracker creates a Tracker over a layout ordered by Top.
func NewTracker(layout []Box) *Tracker {
	t := &Tracker{}
	t.SetLayout(layout)
	return t
}

// SetLayout replaces the layout (after a resize). The active section is kept
// if it still exists.
func (t *Tracker) SetLayout(layout []Box) {
	t.layout = append([]Box(nil), layout...)
	for _, b := range t.layout {
		if b.ID == t.active {
			return
		}
	}
	t.active = ""
}

// Observe updates the active section for a viewport at scrollY of height
// viewportH. The last section overlapping the band wins; when none overlaps,
// the previous active section is kept. It reports whether the active section changed.
func (t *Tracker) Observe(scrollY, viewportH int) (string, bool) {
	start := scrollY + viewportH*bandTop/100
	end := scrollY + viewportH*bandBottom/100
	if end <= start {
		end = start + 1
	}

	found := ""
	for _, b := range t.layout {
		if b.Top < end && b.Top+b.Height > start {
			found = b.ID
		}
	}
	if found == "" || found == t.active {
		return t.active, false
	}
	t.active = found
	return found, true
}

// Active returns the active section ID, or "" before any section was seen.
func (t *Tracker) Active() string {
	return t.active
}

// Target returns the scroll offset that brings section id to the top of the viewport.
func (t *Tracker) Target(id string) (int, bool) {
	for _, b := range t.layout {
		if b.ID == id {
			return max(b.Top, 0), true
		}
	}
	return 0, false
}

// Layout returns a copy of the current layout.
func (t *Tracker) Layout() []Box {
	return append([]Box(nil), t.layout...)
}
