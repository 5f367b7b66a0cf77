package core

import "time"

// Transfer is one leg of a Message. A leg either sends or receives; the
// controller is half duplex, so exactly one of Tx and Rx may be set when
// Len is non-zero. Both buffers must hold at least Len bytes.
type Transfer struct {
	Tx []byte // bytes to send, nil for a receive leg
	Rx []byte // receive destination, nil for a send leg

	// Len is the number of bytes to move on this leg.
	Len int

	// BitsPerWord overrides the device's default word length for this leg.
	// Zero keeps the default. The chosen value persists as the device's
	// active word length after the leg runs.
	BitsPerWord uint8

	// Speed is the requested clock in Hz. Zero accepts the controller
	// default; a non-zero value must lie within [MinSpeed, ControllerClock].
	Speed uint32

	// Delay is an optional pause after this leg completes, before the next
	// leg starts.
	Delay time.Duration
}

// Message is an ordered, non-empty batch of transfers for one device.
// Chip select is asserted once before the first leg and released once
// after the last, whatever happens in between.
type Message struct {
	Transfers []Transfer

	// ActualLength accumulates the bytes actually moved across all legs.
	// It is the only failure signal the engine reports for a message that
	// passed validation: a short or timed-out leg shows up as ActualLength
	// falling short of the requested total.
	ActualLength int

	// Status is reset when the sequencer takes the message and is not
	// updated on mid-sequence failures; see ActualLength. Changing that
	// would change the external contract.
	Status error

	// Complete, when set, is invoked once the sequencer is done with the
	// message, on every exit path past validation.
	Complete func(*Message)
}

// Length returns the total number of bytes the message asks to move.
func (m *Message) Length() int {
	n := 0
	for i := range m.Transfers {
		n += m.Transfers[i].Len
	}
	return n
}
