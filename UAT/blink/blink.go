// Package blink toggles board LEDs through the hal package.
package blink

import (
	"fmt"
	"time"

	"github.com/toejough/staticmock/UAT/blink/hal"
)

// Toggle inverts pin times times, waiting period between inversions.
// It stops at the first hal error.
func Toggle(pin, times int, period time.Duration) error {
	for i := range times {
		level, err := hal.ReadPin(pin)
		if err != nil {
			return fmt.Errorf("toggle %d of pin %d: %w", i, pin, err)
		}

		err = hal.SetPin(pin, !level)
		if err != nil {
			return fmt.Errorf("toggle %d of pin %d: %w", i, pin, err)
		}

		hal.Logf("pin %d -> %t", pin, !level)

		if i < times-1 {
			hal.Sleep(period)
		}
	}

	return nil
}
