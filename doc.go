/*
Package tour is an interactive tour that teaches non-developers what terminal
coding agents are.

A tour is a page of numbered sections. Each section carries prose and, usually,
one interactive widget: a scripted conversation that streams character by
character, a manual step-through, a toy shell, or a list of commands to copy.
Scripts are plain data; the same page is served as a web page (tour serve) and
played in the terminal (tour play).

# Usage

The embedded tour needs no files:

	t, err := tour.New()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t.Page.Title)

Scripts can be edited as Markdown files with YAML frontmatter. Files in the
directory override embedded scripts with the same ID:

	t, err := tour.New(tour.WithScriptsDir("./scripts"))

# Concurrency

Playback runs on a virtual clock that only moves when its owner advances it.
The TUI advances one shared clock per frame; the HTTP server gives each mounted
widget its own goroutine and clock. No playback state is shared between widgets.
*/
package tour
