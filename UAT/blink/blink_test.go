//go:build staticmock

package blink_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/toejough/staticmock"
	"github.com/toejough/staticmock/UAT/blink"
	"github.com/toejough/staticmock/UAT/blink/hal"
)

// The tests in this file install hal.HalMock in the default registry, so none of
// them run in parallel.

// TestToggle_InvertsPinEachTime verifies the pin writes and the waits between them.
func TestToggle_InvertsPinEachTime(t *testing.T) {
	g := NewWithT(t)

	level := false

	var (
		writes []bool
		sleeps []time.Duration
	)

	staticmock.Install(t, &hal.HalMock{
		ReadPinFunc: func(pin int) (bool, error) {
			g.Expect(pin).To(Equal(7))

			return level, nil
		},
		SetPinFunc: func(pin int, high bool) error {
			g.Expect(pin).To(Equal(7))

			level = high
			writes = append(writes, high)

			return nil
		},
		SleepFunc: func(d time.Duration) { sleeps = append(sleeps, d) },
		LogfFunc:  func(string, ...any) {},
	})

	g.Expect(blink.Toggle(7, 3, 250*time.Millisecond)).To(Succeed())
	g.Expect(writes).To(Equal([]bool{true, false, true}))
	g.Expect(sleeps).To(Equal([]time.Duration{250 * time.Millisecond, 250 * time.Millisecond}))
}

// TestToggle_StopsAtFirstError verifies that a failing write is wrapped and
// ends the loop.
func TestToggle_StopsAtFirstError(t *testing.T) {
	g := NewWithT(t)

	errBus := errors.New("bus fault")
	writes := 0

	staticmock.Install(t, &hal.HalMock{
		ReadPinFunc: func(int) (bool, error) { return false, nil },
		SetPinFunc: func(int, bool) error {
			writes++

			return errBus
		},
	})

	err := blink.Toggle(1, 5, time.Second)
	g.Expect(err).To(MatchError(errBus))
	g.Expect(err.Error()).To(ContainSubstring("toggle 0 of pin 1"))
	g.Expect(writes).To(Equal(1))
}

// TestToggle_UnsetFuncPanics verifies that a stub reached through a mock without
// the matching Func field names what is missing.
func TestToggle_UnsetFuncPanics(t *testing.T) {
	g := NewWithT(t)

	staticmock.Install(t, &hal.HalMock{
		ReadPinFunc: func(int) (bool, error) { return true, nil },
	})

	g.Expect(func() { _ = blink.Toggle(1, 1, 0) }).
		To(PanicWith("HalMock.SetPin called without SetPinFunc set"))
}

// TestToggle_WithoutMockPanics verifies that stubs fail loudly when the test
// forgot to install HalMock.
func TestToggle_WithoutMockPanics(t *testing.T) {
	g := NewWithT(t)

	g.Expect(staticmock.Registered[hal.HalMock]()).To(BeFalse())
	g.Expect(func() { _ = blink.Toggle(1, 1, 0) }).
		To(PanicWith(MatchError(staticmock.ErrNotRegistered)))
}

// TestHalMock_ReplacedMidTest verifies that installing a second HalMock takes
// over from the first for the rest of the test.
func TestHalMock_ReplacedMidTest(t *testing.T) {
	g := NewWithT(t)

	var log []string

	staticmock.Install(t, &hal.HalMock{ResetFunc: func() { log = append(log, "first") }})
	hal.Reset()

	staticmock.Install(t, &hal.HalMock{ResetFunc: func() { log = append(log, "second") }})
	hal.Reset()

	g.Expect(log).To(Equal([]string{"first", "second"}))
}
