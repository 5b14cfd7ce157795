//go:build !staticmock

package hal

import (
	"fmt"
	"io"
	"os"
	"time"
)

//go:generate ../../../bin/stubgen --name HalMock

// Logf writes a diagnostic line to the console.
func Logf(format string, args ...any) {
	_, _ = fmt.Fprintf(console, format+"\n", args...)
}

// ReadPin reports whether pin is driven high.
func ReadPin(pin int) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}

	return pins[pin], nil
}

// Reset drives every pin low.
func Reset() {
	pins = [PinCount]bool{}
}

// SetPin drives pin high or low.
func SetPin(pin int, high bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}

	pins[pin] = high

	return nil
}

// Sleep blocks for d.
func Sleep(d time.Duration) {
	time.Sleep(d)
}

func checkPin(pin int) error {
	if pin < 0 || pin >= PinCount {
		return fmt.Errorf("%w: %d", ErrPinOutOfRange, pin)
	}

	return nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Stands in for the console UART
	console io.Writer = os.Stderr
	//nolint:gochecknoglobals // Stands in for the GPIO output register
	pins [PinCount]bool
)
