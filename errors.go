package epd7in5b

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition matches every *TransitionError.
	ErrInvalidTransition = errors.New("epd7in5b: invalid transition")
	// ErrDeviceIO matches every *DeviceError.
	ErrDeviceIO = errors.New("epd7in5b: device I/O failed")
	// ErrBusyTimeout is returned when the panel keeps BUSY asserted for longer
	// than Opts.BusyTimeout.
	ErrBusyTimeout = errors.New("epd7in5b: busy timeout")
	// ErrInvalidImageSize is returned when a frame does not match the panel
	// geometry.
	ErrInvalidImageSize = errors.New("epd7in5b: invalid image size")
	// ErrWindow is returned when a partial window does not fit the panel or
	// the canvas pushed into it.
	ErrWindow = errors.New("epd7in5b: invalid partial window")
)

// TransitionError reports an action that is not legal in the current state.
type TransitionError struct {
	From   State
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("epd7in5b: %v not allowed in state %v", e.Action, e.From)
}

// Is reports whether target is ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// DeviceError wraps a transport failure. The controller state is left
// unchanged when it is returned.
type DeviceError struct {
	Action Action
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("epd7in5b: %v failed: %v", e.Action, e.Err)
}

// Is reports whether target is ErrDeviceIO.
func (e *DeviceError) Is(target error) bool {
	return target == ErrDeviceIO
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
