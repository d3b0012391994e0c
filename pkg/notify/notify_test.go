package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(message string) {
	m.Called(message)
}

func TestToaster_ExpiresAfterDuration(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	var changes []string
	toast := notify.NewToaster(c, notify.WithOnChange(func(m string) { changes = append(changes, m) }))

	toast.Notify("Copied!")
	assert.Equal(t, "Copied!", toast.Message())

	c.Advance(1999 * time.Millisecond)
	assert.Equal(t, "Copied!", toast.Message())

	c.Advance(time.Millisecond)
	assert.Empty(t, toast.Message())
	assert.Equal(t, []string{"Copied!", ""}, changes)
}

func TestToaster_NewMessageRestartsTimer(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	toast := notify.NewToaster(c, notify.WithDuration(time.Second))

	toast.Notify("first")
	c.Advance(800 * time.Millisecond)
	toast.Notify("second")
	c.Advance(800 * time.Millisecond)
	assert.Equal(t, "second", toast.Message())

	c.Advance(200 * time.Millisecond)
	assert.Empty(t, toast.Message())
	assert.Equal(t, 0, c.Pending())
}

func TestToaster_Dismiss(t *testing.T) {
	c := clock.NewVirtual(time.Time{})
	toast := notify.NewToaster(c)

	toast.Notify("hello")
	toast.Dismiss()
	assert.Empty(t, toast.Message())
	assert.Equal(t, 0, c.Pending())
}

func TestCopier_NotifiesOnSuccess(t *testing.T) {
	n := new(mockNotifier)
	n.On("Notify", notify.CopiedMessage).Once()

	var copied string
	c := notify.NewCopier(n, notify.WithWriter(func(s string) error {
		copied = s
		return nil
	}))

	assert.True(t, c.Copy("npm install"))
	assert.Equal(t, "npm install", copied)
	n.AssertExpectations(t)
}

func TestCopier_FailureIsSilent(t *testing.T) {
	n := new(mockNotifier)
	c := notify.NewCopier(n, notify.WithWriter(func(string) error {
		return errors.New("no clipboard")
	}))

	assert.False(t, c.Copy("npm install"))
	n.AssertNotCalled(t, "Notify", mock.Anything)
}
