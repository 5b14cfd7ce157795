//go:build !staticmock

package hal_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/staticmock/UAT/blink/hal"
)

// TestSetPin_ReadBack verifies that a driven level reads back until reset.
// Not parallel: the simulated pins are package state.
func TestSetPin_ReadBack(t *testing.T) {
	g := NewWithT(t)

	hal.Reset()
	t.Cleanup(hal.Reset)

	g.Expect(hal.SetPin(3, true)).To(Succeed())
	g.Expect(hal.ReadPin(3)).To(BeTrue())
	g.Expect(hal.ReadPin(4)).To(BeFalse())

	hal.Reset()
	g.Expect(hal.ReadPin(3)).To(BeFalse())
}

// TestPins_OutOfRange verifies that pins outside the board are rejected.
func TestPins_OutOfRange(t *testing.T) {
	g := NewWithT(t)

	g.Expect(hal.SetPin(-1, true)).To(MatchError(hal.ErrPinOutOfRange))

	_, err := hal.ReadPin(hal.PinCount)
	g.Expect(err).To(MatchError(hal.ErrPinOutOfRange))
}
