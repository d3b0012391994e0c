package domain

// WidgetKind selects which interactive component a section embeds.
type WidgetKind string

const (
	WidgetPlayback WidgetKind = "playback" // autoplaying or play-button scripts
	WidgetSteps    WidgetKind = "steps"    // manual step forward/back
	WidgetShell    WidgetKind = "shell"    // toy command interpreter
	WidgetCopy     WidgetKind = "copy"     // copyable commands and prompts
	WidgetNone     WidgetKind = ""
)

// CopyItem is a command or prompt the reader can copy to the clipboard.
type CopyItem struct {
	Label   string `json:"label" yaml:"label"`
	Command string `json:"command" yaml:"command"`
	Note    string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Widget describes the interactive part of a section.
type Widget struct {
	Kind WidgetKind `json:"kind" yaml:"kind"`

	// Scripts lists the selectable script variants (tabs). The first is selected on mount.
	Scripts []string `json:"scripts,omitempty" yaml:"scripts,omitempty"`

	// Autoplay starts playback on mount.
	Autoplay bool `json:"autoplay,omitempty" yaml:"autoplay,omitempty"`

	Items []CopyItem `json:"items,omitempty" yaml:"items,omitempty"`

	// Tip is a short callout rendered under the widget.
	Tip string `json:"tip,omitempty" yaml:"tip,omitempty"`
}

// Section is one content block of the page.
type Section struct {
	ID          string `json:"id" yaml:"id"`
	Number      string `json:"number" yaml:"number"`
	Title       string `json:"title" yaml:"title"`
	Short       string `json:"short" yaml:"short"` // TOC label
	Description string `json:"description" yaml:"description"`
	Widget      Widget `json:"widget" yaml:"widget"`
}

// Link is an external reference shown in the footer.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Page is the whole scrollable document.
type Page struct {
	Title    string    `json:"title" yaml:"title"`
	Tagline  string    `json:"tagline" yaml:"tagline"`
	Sections []Section `json:"sections" yaml:"sections"`
	Footer   []Link    `json:"footer,omitempty" yaml:"footer,omitempty"`
}
