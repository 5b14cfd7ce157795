// Package hal is the board's GPIO layer.
//
// hal.go is the host-simulated implementation. Builds tagged staticmock compile
// generated_HalMock.go instead, which forwards every function to the installed HalMock.
package hal

import "errors"

// PinCount is the number of GPIO pins on the board.
const PinCount = 32

// ErrPinOutOfRange is returned for pins outside [0, PinCount).
var ErrPinOutOfRange = errors.New("pin out of range")
