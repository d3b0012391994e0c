/*
Package session runs widget sessions for the HTTP frontend.

A widget session is one mounted playback widget. Each session owns a
Sequencer and its own virtual clock, and both live on a single actor
goroutine: commands arrive over a channel, a ticker advances the clock, and
every state change is published as a frame. Cancelling the context the
session was opened with unmounts the widget and disposes the Sequencer.
*/
package session
