/*
Package playback advances a scripted conversation one turn at a time.

The rules live in Transition, a pure function from (state, event) to
(state, effects). Sequencer wires that machine to a stream.Streamer and a
clock.Clock: it performs the requested effects and feeds streamer callbacks and
timer expiries back in as events.

	seq := playback.New(clk, script, playback.WithHooks(hooks))
	seq.Play()
	clk.Advance(time.Second)
	frame := seq.Frame()

Everything runs on the goroutine that advances the clock. Events raised while
another event is being handled (for example a streamer completing synchronously)
are queued and processed in order.
*/
package playback
