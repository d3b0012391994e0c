package stream_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamer_RevealsTwoRunesPerTick(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	var offsets []int
	completed := 0
	s.Start("hello", func(n int) { offsets = append(offsets, n) }, func() { completed++ })

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, "he", s.Visible())

	c.Advance(40 * time.Millisecond)
	assert.Equal(t, []int{2, 4, 5}, offsets)
	assert.Equal(t, 1, completed)
	assert.True(t, s.Done())
	assert.Equal(t, 0, c.Pending())
}

func TestStreamer_EmptyTextCompletesSynchronously(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	completed := 0
	s.Start("", nil, func() { completed++ })
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, c.Pending())

	s.Resume()
	assert.Equal(t, 1, completed, "resume after completion does nothing")
}

func TestStreamer_StopAndResumeKeepContinuity(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c, stream.WithCharsPerTick(1))

	text := "pause me ✓"
	var seen []int
	s.Start(text, func(n int) { seen = append(seen, n) }, nil)

	c.Advance(60 * time.Millisecond)
	s.Stop()
	stoppedAt := s.Offset()
	require.Equal(t, 3, stoppedAt)

	c.Advance(time.Second)
	assert.Equal(t, stoppedAt, s.Offset(), "no ticks while stopped")

	s.Resume()
	c.Drain(0)

	assert.True(t, s.Done())
	assert.Equal(t, text, s.Visible())
	for i := 1; i < len(seen); i++ {
		assert.Equal(t, seen[i-1]+1, seen[i], "offsets never skip or repeat")
	}
}

func TestStreamer_StartResetsPreviousRun(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	firstDone := false
	s.Start("first text", nil, func() { firstDone = true })
	c.Advance(20 * time.Millisecond)

	secondDone := false
	s.Start("second", nil, func() { secondDone = true })
	assert.Equal(t, 0, s.Offset())

	c.Drain(0)
	assert.False(t, firstDone, "stale run never completes")
	assert.True(t, secondDone)
	assert.Equal(t, "second", s.Visible())
}

func TestStreamer_DisposeSilencesCallbacks(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	calls := 0
	s.Start("some text to stream", func(int) { calls++ }, func() { calls++ })
	c.Advance(20 * time.Millisecond)
	require.Equal(t, 1, calls)

	s.Dispose()
	c.Drain(0)
	assert.Equal(t, 1, calls)

	s.Start("again", nil, func() { calls++ })
	c.Drain(0)
	assert.Equal(t, 1, calls, "a disposed streamer ignores Start")
}

func TestStreamer_SeekThenResume(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	completed := false
	s.Seek("abcdef", 4, nil, func() { completed = true })
	assert.Equal(t, "abcd", s.Visible())
	assert.False(t, s.Running())

	s.Resume()
	c.Advance(20 * time.Millisecond)
	assert.True(t, completed)

	completed = false
	s.Seek("abc", 3, nil, func() { completed = true })
	s.Resume()
	assert.True(t, completed, "fully revealed text completes on resume")
}

func TestStreamer_StartDelay(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c, stream.WithStartDelay(100*time.Millisecond))

	s.Start("abc", nil, nil)
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, s.Offset())
	c.Advance(20 * time.Millisecond)
	assert.Equal(t, 2, s.Offset())
}

func TestStreamer_DurationIsCapped(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	short := "abcd"
	assert.Equal(t, 40*time.Millisecond, s.Duration(short))

	long := strings.Repeat("x", 10000)
	assert.LessOrEqual(t, s.Duration(long), stream.DefaultMaxDuration)

	done := false
	s.Start(long, nil, func() { done = true })
	c.Advance(stream.DefaultMaxDuration)
	assert.True(t, done)
}

func TestStreamer_RevealCallbackMayStop(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	s := stream.New(c)

	s.Start("abcdefgh", func(n int) {
		if n >= 4 {
			s.Stop()
		}
	}, nil)

	c.Drain(0)
	assert.Equal(t, 4, s.Offset())
	assert.False(t, s.Running())
}
