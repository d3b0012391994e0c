/*
Package notify shows transient messages and copies text to the clipboard.

A Toaster is created once at the page root and handed to the widgets that need
it, so there is exactly one toast on screen at a time.
*/
package notify

import (
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 2 * time.Second

// ToastOption configures a Toaster.
type ToastOption func(*Toaster)

// WithDuration sets how long each message stays visible.
func WithDuration(d time.Duration) ToastOption {
	return func(t *Toaster) {
		if d > 0 {
			t.duration = d
		}
	}
}

// WithOnChange registers a callback fired when the visible message changes
// (including to "" when it expires).
func WithOnChange(fn func(string)) ToastOption {
	return func(t *Toaster) {
		t.onChange = fn
	}
}

// Toaster implements ports.Notifier. A new message replaces the current one
// and restarts the timer. It is not safe for concurrent use.
type Toaster struct {
	clock    clock.Clock
	duration time.Duration
	onChange func(string)

	message string
	timer   clock.Timer
}

// NewToaster creates a Toaster driven by c.
func NewToaster(c clock.Clock, opts ...ToastOption) *Toaster {
	t := &Toaster{clock: c, duration: DefaultToastDuration}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify shows message.
func (t *Toaster) Notify(message string) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.set(message)
	t.timer = t.clock.AfterFunc(t.duration, func() {
		t.timer = nil
		t.set("")
	})
}

// Message returns the visible message, or "" when none is shown.
func (t *Toaster) Message() string {
	return t.message
}

// Dismiss hides the current message immediately.
func (t *Toaster) Dismiss() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.set("")
}

func (t *Toaster) set(message string) {
	if t.message == message {
		return
	}
	t.message = message
	if t.onChange != nil {
		t.onChange(message)
	}
}
