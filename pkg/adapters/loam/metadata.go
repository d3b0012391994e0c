package loam

// ScriptMetadata is the frontmatter of a script document.
// The markdown body becomes the script description.
//
//	---
//	id: hero
//	title: Fix a bug
//	kind: chat
//	turns:
//	  - role: user
//	    text: Fix the login bug
//	---
//	The agent reads the code before touching it.
type ScriptMetadata struct {
	ID      string `json:"id" mapstructure:"id"`
	Title   string `json:"title" mapstructure:"title"`
	Kind    string `json:"kind" mapstructure:"kind"`
	Request string `json:"request,omitempty" mapstructure:"request"`

	// Repeat is decoded loosely: strict mode may surface numbers as json.Number.
	Repeat any `json:"repeat,omitempty" mapstructure:"repeat"`

	// Turns holds raw maps, decoded into domain.Turn by the loader.
	Turns []any `json:"turns" mapstructure:"turns"`
}
