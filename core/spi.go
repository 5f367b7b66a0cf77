package core

import (
	"fmt"
	"time"

	"github.com/edaniels/golog"
)

// Device describes one slave on the controller: which chip select line it
// sits behind and how it wants to be clocked. Descriptors come from board
// tables or from whatever enumerates the bus; the engine only reads them.
type Device struct {
	Name        string
	ChipSelect  uint8 // 0 to NumChipSelects-1
	BitsPerWord uint8 // default word length, 4-32
	Mode        Mode
}

// Controller drives one KP2000 SPI controller through its register window.
//
// The engine performs no internal locking: the owner serializes messages
// and must never run Setup, TransferMessage, or Cleanup concurrently for
// the same controller.
type Controller struct {
	bus    RegisterBus
	logger golog.Logger
	states map[*Device]*controllerState
}

// NewController returns a controller over the given register window.
func NewController(bus RegisterBus, logger golog.Logger) *Controller {
	return &Controller{
		bus:    bus,
		logger: logger,
		states: make(map[*Device]*controllerState),
	}
}

// Setup attaches a device to the controller. On first call it allocates
// the session state (with an empty Config cache) and programs an initial
// Config value: SPI enable, transmission enable, and FIFO enable all
// clear, word length and chip select from the descriptor, clocking mode
// from the descriptor's mode flags. Subsequent calls for the same device
// reuse the existing state.
func (c *Controller) Setup(dev *Device) error {
	if dev.ChipSelect >= NumChipSelects {
		return fmt.Errorf("%s: chip select %d: %w", dev.Name, dev.ChipSelect, ErrChipSelect)
	}
	if dev.BitsPerWord < MinWordLength || dev.BitsPerWord > MaxWordLength {
		return fmt.Errorf("%s: %d bits per word: %w", dev.Name, dev.BitsPerWord, ErrWordLength)
	}
	if dev.Mode&^modeAll != 0 {
		return fmt.Errorf("%s: mode %#x: %w", dev.Name, uint8(dev.Mode), ErrMode)
	}

	s := c.states[dev]
	if s == nil {
		s = newControllerState(c.bus, dev)
		c.states[dev] = s
	}

	var sc ConfigReg
	sc.SetWordLength(int(dev.BitsPerWord))
	sc.SetChipSelect(dev.ChipSelect)
	sc.SetPhase(dev.Mode&ModeCPHA != 0)
	sc.SetPolarity(dev.Mode&ModeCPOL != 0)
	sc.SetCSPolarity(dev.Mode&ModeCSHigh != 0)
	s.writeReg(RegConfig, uint64(sc))
	return nil
}

// Cleanup detaches a device, releasing its session state. Safe to call
// for a device that was never set up.
func (c *Controller) Cleanup(dev *Device) {
	delete(c.states, dev)
}

// validate checks a whole message before any register is touched. Any
// invalid transfer rejects the message atomically.
func (c *Controller) validate(dev *Device, m *Message) error {
	if len(m.Transfers) == 0 {
		return ErrNoTransfers
	}
	for i := range m.Transfers {
		t := &m.Transfers[i]
		if t.Speed > ControllerClock {
			c.logger.Debugf("%s: transfer %d: %d Hz, %d bytes rejected", dev.Name, i, t.Speed, t.Len)
			return fmt.Errorf("transfer %d: %d Hz: %w", i, t.Speed, ErrSpeedTooFast)
		}
		if t.Speed != 0 && t.Speed < MinSpeed {
			c.logger.Debugf("%s: transfer %d: %d Hz below minimum %d Hz", dev.Name, i, t.Speed, MinSpeed)
			return fmt.Errorf("transfer %d: %d Hz: %w", i, t.Speed, ErrSpeedTooSlow)
		}
		if t.Len != 0 && t.Tx == nil && t.Rx == nil {
			return fmt.Errorf("transfer %d: %w", i, ErrNoBuffer)
		}
		if t.Tx != nil && t.Rx != nil {
			return fmt.Errorf("transfer %d: %w", i, ErrBothBuffers)
		}
	}
	return nil
}

// TransferMessage runs a message against the device and returns the number
// of bytes actually moved.
//
// The sequence is: validate everything with no side effects, assert chip
// select, wait once for any residual end-of-transfer, run each leg in
// order, and release chip select. The release happens on every path past
// validation, including an up-front EOT timeout or a short leg, so the bus
// is never left selected.
//
// The returned error covers validation and missing setup only. Failures
// past that point (a leg timing out or coming up short) stop the remaining
// legs but are reported solely through the actual length falling short of
// m.Length(); see Message.
func (c *Controller) TransferMessage(dev *Device, m *Message) (int, error) {
	s := c.states[dev]
	if s == nil {
		return 0, fmt.Errorf("%s: %w", dev.Name, ErrNotSetup)
	}

	m.ActualLength = 0
	m.Status = nil

	if err := c.validate(dev, m); err != nil {
		return 0, err
	}

	// Assert chip select to start the sequence.
	sc := ConfigReg(s.readReg(RegConfig))
	sc.SetSPIEnable(true)
	s.writeReg(RegConfig, uint64(sc))

	var status error

	// A residual transfer from a prior message must drain before data
	// moves. If it never does, skip the legs but still release the bus.
	if s.waitForBit(RegStatus, StatusEOT) != nil {
		c.logger.Infof("%s: EOT timed out", dev.Name)
	} else {
		for i := range m.Transfers {
			t := &m.Transfers[i]

			if t.Tx == nil && t.Rx == nil && t.Len != 0 {
				status = fmt.Errorf("transfer %d: %w", i, ErrNoBuffer)
				break
			}

			if t.Len != 0 {
				wordLen := int(dev.BitsPerWord)
				if t.BitsPerWord != 0 {
					wordLen = int(t.BitsPerWord)
				}

				sc = ConfigReg(s.readReg(RegConfig))
				if t.Tx != nil {
					sc.SetTransferMode(TransferTx)
				} else {
					sc.SetTransferMode(TransferRx)
				}
				s.wordLen = wordLen
				sc.SetWordLength(wordLen)
				sc.SetChipSelect(dev.ChipSelect)
				s.writeReg(RegConfig, uint64(sc))

				count := s.txrxPIO(t)
				m.ActualLength += count
				if count != t.Len {
					status = fmt.Errorf("transfer %d: moved %d of %d: %w", i, count, t.Len, ErrShortTransfer)
					break
				}
			}

			if t.Delay > 0 {
				time.Sleep(t.Delay)
			}
		}
	}

	// Release chip select to end the sequence. Runs unconditionally.
	sc = ConfigReg(s.readReg(RegConfig))
	sc.SetSPIEnable(false)
	s.writeReg(RegConfig, uint64(sc))

	if status != nil {
		c.logger.Debugf("%s: message stopped early: %v", dev.Name, status)
	}

	if m.Complete != nil {
		m.Complete(m)
	}
	return m.ActualLength, nil
}
