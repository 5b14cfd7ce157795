//go:build !staticmock

package blink_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/staticmock/UAT/blink"
	"github.com/toejough/staticmock/UAT/blink/hal"
)

// TestToggle_SimulatedBoard runs Toggle against the host-simulated hal.
func TestToggle_SimulatedBoard(t *testing.T) {
	g := NewWithT(t)

	hal.Reset()
	t.Cleanup(hal.Reset)

	g.Expect(blink.Toggle(5, 3, 0)).To(Succeed())
	g.Expect(hal.ReadPin(5)).To(BeTrue(), "an odd number of toggles leaves the pin high")

	g.Expect(blink.Toggle(hal.PinCount, 1, 0)).To(MatchError(hal.ErrPinOutOfRange))
}
