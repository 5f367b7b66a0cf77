package core

import "errors"

// Validation errors. All of these are detected before any register is
// touched; a message that trips one is rejected atomically.
var (
	// ErrNoTransfers is returned for a message with an empty transfer list.
	ErrNoTransfers = errors.New("message has no transfers")

	// ErrNoBuffer is returned for a transfer with a non-zero length but
	// neither a send nor a receive buffer.
	ErrNoBuffer = errors.New("transfer has a length but no buffer")

	// ErrBothBuffers is returned for a transfer with both a send and a
	// receive buffer. The controller is half duplex; a leg is one or the
	// other.
	ErrBothBuffers = errors.New("transfer has both send and receive buffers")

	// ErrSpeedTooFast is returned when a transfer requests a clock above
	// the controller reference clock.
	ErrSpeedTooFast = errors.New("requested speed exceeds controller clock")

	// ErrSpeedTooSlow is returned when a transfer requests a non-zero
	// clock below ControllerClock>>15.
	ErrSpeedTooSlow = errors.New("requested speed below minimum")
)

// Setup errors.
var (
	// ErrChipSelect is returned for a chip select index outside the
	// controller's lines.
	ErrChipSelect = errors.New("chip select index out of range")

	// ErrWordLength is returned for a default word length outside 4-32 bits.
	ErrWordLength = errors.New("word length out of range")

	// ErrMode is returned for mode flags the controller does not support.
	ErrMode = errors.New("unsupported mode flags")

	// ErrNotSetup is returned when a message is submitted for a device
	// that was never attached with Setup.
	ErrNotSetup = errors.New("device has no controller state; call Setup first")
)

// ErrTimeout is returned by the bit-wait primitive when a status bit did
// not assert within the polling ceiling.
var ErrTimeout = errors.New("timed out waiting for status bit")

// ErrShortTransfer reports that a transfer moved fewer bytes than
// requested. The sequencer tracks it internally; callers observe it
// through Message.ActualLength falling short of the requested total.
var ErrShortTransfer = errors.New("transfer moved fewer bytes than requested")
