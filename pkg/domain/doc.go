/*
Package domain contains the core data model of the tour.

Everything here is plain data: scripts and their turns, the sections that make up
the page, and the playback state owned by a sequencer. Nothing in this package
knows about timers, terminals or HTTP.

# Key Entities

  - Turn: one scripted message or workflow step (role, text, optional rich blocks).
  - Script: an ordered list of Turns representing one demo scenario.
  - Playback: the state of one sequencer (phase, index, streamed offset).
  - Frame: the render-ready projection of a Playback over its Script.
  - Section / Page: the document the widgets are embedded in.
*/
package domain
