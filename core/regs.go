// Package core implements the transfer engine of the KP2000 memory-mapped
// SPI controller. It turns an abstract request ("send these bytes to chip
// select N at this clock and word size") into a sequence of register
// accesses against the controller's register window, and turns hardware
// status bits back into completion and error results.
//
// The engine is deliberately narrow: transfers are half duplex (send-only
// or receive-only legs), all waiting is polled against the Status register,
// and the hardware FIFO is modeled but not driven. Bus and device
// enumeration, register-window mapping, and board bring-up live outside
// this package; the engine only needs a RegisterBus and device descriptors.
package core

// Register indices into the controller window. The window is addressed at
// 64-bit word granularity: register i lives at byte offset i*8.
const (
	RegConfig = 0 // configuration (read-modify-write, cached)
	RegStatus = 1 // status (read only)
	RegFFCtrl = 2 // FIFO control
	RegTxData = 3 // transmit data (write only)
	RegRxData = 4 // receive data (read only)
)

// Controller constants.
const (
	ControllerClock = 48000000              // SPI reference clock in Hz
	MinSpeed        = ControllerClock >> 15 // lowest non-zero clock a transfer may request (~1.46 kHz)
	MaxFIFODepth    = 64                    // hardware FIFO entries
	MaxFIFOWordCnt  = 0xFFFF                // word-count ceiling
	NumChipSelects  = 4                     // chip select lines on the controller
	MinWordLength   = 4                     // narrowest configurable word, in bits
	MaxWordLength   = 32                    // widest configurable word, in bits
)

// Mode holds the clocking mode flags of a slave device.
type Mode uint8

const (
	ModeCPHA   Mode = 1 << 0 // clock phase: sample on the trailing edge
	ModeCPOL   Mode = 1 << 1 // clock polarity: clock idles high
	ModeCSHigh Mode = 1 << 2 // chip select is active high

	modeAll = ModeCPHA | ModeCPOL | ModeCSHigh
)

// TransferMode is the direction field of the Config register.
type TransferMode uint32

const (
	TransferTxRx TransferMode = 0 // simultaneous send and receive (unused by this engine)
	TransferRx   TransferMode = 1 // receive only
	TransferTx   TransferMode = 2 // send only
)

// Config register bit layout, LSB first. Field values sit at
// confXxxShift and are confXxxMask wide after shifting.
const (
	confPhaShift   = 0  // clock phase, 1 bit
	confPolShift   = 1  // clock polarity, 1 bit
	confEPolShift  = 2  // chip select polarity, 1 bit
	confDPEShift   = 3  // transmission enable, 1 bit
	confWLShift    = 4  // word length minus one, 5 bits
	confTRMShift   = 12 // transfer mode, 2 bits
	confCSShift    = 14 // chip select index, 4 bits
	confWCntShift  = 18 // word count, 7 bits
	confFFEnShift  = 25 // FIFO enable, 1 bit
	confSPIEnShift = 26 // SPI enable (chip select assertion), 1 bit

	confWLMask   = 0x1F
	confTRMMask  = 0x3
	confCSMask   = 0xF
	confWCntMask = 0x7F
)

// ConfigReg models the packed Config register. The zero value has every
// enable bit clear, which is also the state Setup programs at attach.
type ConfigReg uint32

func (c ConfigReg) bit(shift uint) bool { return c&(1<<shift) != 0 }

func (c *ConfigReg) setBit(shift uint, on bool) {
	if on {
		*c |= 1 << shift
	} else {
		*c &^= 1 << shift
	}
}

// Phase reports the clock phase bit.
func (c ConfigReg) Phase() bool { return c.bit(confPhaShift) }

// SetPhase sets the clock phase bit.
func (c *ConfigReg) SetPhase(on bool) { c.setBit(confPhaShift, on) }

// Polarity reports the clock polarity bit.
func (c ConfigReg) Polarity() bool { return c.bit(confPolShift) }

// SetPolarity sets the clock polarity bit.
func (c *ConfigReg) SetPolarity(on bool) { c.setBit(confPolShift, on) }

// CSPolarity reports the chip select polarity bit (set = active high).
func (c ConfigReg) CSPolarity() bool { return c.bit(confEPolShift) }

// SetCSPolarity sets the chip select polarity bit.
func (c *ConfigReg) SetCSPolarity(on bool) { c.setBit(confEPolShift, on) }

// TxEnable reports the transmission enable bit.
func (c ConfigReg) TxEnable() bool { return c.bit(confDPEShift) }

// SetTxEnable sets the transmission enable bit.
func (c *ConfigReg) SetTxEnable(on bool) { c.setBit(confDPEShift, on) }

// WordLength returns the configured word length in bits (4-32).
func (c ConfigReg) WordLength() int {
	return int(c>>confWLShift&confWLMask) + 1
}

// SetWordLength encodes a word length in bits into the word-length-minus-one
// field. Callers validate the 4-32 range; the field itself encodes 1-32.
func (c *ConfigReg) SetWordLength(bits int) {
	*c &^= confWLMask << confWLShift
	*c |= ConfigReg(bits-1) & confWLMask << confWLShift
}

// TransferMode returns the direction field.
func (c ConfigReg) TransferMode() TransferMode {
	return TransferMode(c >> confTRMShift & confTRMMask)
}

// SetTransferMode sets the direction field.
func (c *ConfigReg) SetTransferMode(m TransferMode) {
	*c &^= confTRMMask << confTRMShift
	*c |= ConfigReg(m) & confTRMMask << confTRMShift
}

// ChipSelect returns the chip select index field.
func (c ConfigReg) ChipSelect() uint8 {
	return uint8(c >> confCSShift & confCSMask)
}

// SetChipSelect sets the chip select index field.
func (c *ConfigReg) SetChipSelect(cs uint8) {
	*c &^= confCSMask << confCSShift
	*c |= ConfigReg(cs) & confCSMask << confCSShift
}

// WordCount returns the FIFO word count field.
func (c ConfigReg) WordCount() int {
	return int(c >> confWCntShift & confWCntMask)
}

// SetWordCount sets the FIFO word count field. The field encodes up to 127
// even though the FIFO itself holds MaxFIFODepth entries.
func (c *ConfigReg) SetWordCount(n int) {
	*c &^= confWCntMask << confWCntShift
	*c |= ConfigReg(n) & confWCntMask << confWCntShift
}

// FIFOEnable reports the FIFO enable bit.
func (c ConfigReg) FIFOEnable() bool { return c.bit(confFFEnShift) }

// SetFIFOEnable sets the FIFO enable bit.
func (c *ConfigReg) SetFIFOEnable(on bool) { c.setBit(confFFEnShift, on) }

// SPIEnable reports the SPI enable bit. Setting it asserts chip select and
// starts a sequence; clearing it releases the bus.
func (c ConfigReg) SPIEnable() bool { return c.bit(confSPIEnShift) }

// SetSPIEnable sets the SPI enable bit.
func (c *ConfigReg) SetSPIEnable(on bool) { c.setBit(confSPIEnShift, on) }

// Status register bits, usable directly as wait masks.
const (
	StatusRxReady     uint64 = 1 << 0 // a received word is available in RxData
	StatusTxReady     uint64 = 1 << 1 // TxData can accept another word
	StatusEOT         uint64 = 1 << 2 // end of transfer
	StatusTxFIFOEmpty uint64 = 1 << 4
	StatusTxFIFOFull  uint64 = 1 << 5
	StatusRxFIFOEmpty uint64 = 1 << 6
	StatusRxFIFOFull  uint64 = 1 << 7
)

// StatusReg models the read-only Status register.
type StatusReg uint32

// RxReady reports whether a received word is waiting in RxData.
func (s StatusReg) RxReady() bool { return uint64(s)&StatusRxReady != 0 }

// TxReady reports whether TxData can accept another word.
func (s StatusReg) TxReady() bool { return uint64(s)&StatusTxReady != 0 }

// EndOfTransfer reports whether the in-flight operation has finished.
func (s StatusReg) EndOfTransfer() bool { return uint64(s)&StatusEOT != 0 }

// TxFIFOEmpty reports the transmit FIFO empty flag.
func (s StatusReg) TxFIFOEmpty() bool { return uint64(s)&StatusTxFIFOEmpty != 0 }

// TxFIFOFull reports the transmit FIFO full flag.
func (s StatusReg) TxFIFOFull() bool { return uint64(s)&StatusTxFIFOFull != 0 }

// RxFIFOEmpty reports the receive FIFO empty flag.
func (s StatusReg) RxFIFOEmpty() bool { return uint64(s)&StatusRxFIFOEmpty != 0 }

// RxFIFOFull reports the receive FIFO full flag.
func (s StatusReg) RxFIFOFull() bool { return uint64(s)&StatusRxFIFOFull != 0 }

// FFCtrlReg models the FIFO control register. Only the start bit is
// meaningful; the engine models it but the byte-at-a-time path never
// drives the FIFO.
type FFCtrlReg uint32

const ffStartShift = 0

// FIFOStart reports the FIFO start bit.
func (f FFCtrlReg) FIFOStart() bool { return f&(1<<ffStartShift) != 0 }

// SetFIFOStart sets the FIFO start bit.
func (f *FFCtrlReg) SetFIFOStart(on bool) {
	if on {
		*f |= 1 << ffStartShift
	} else {
		*f &^= 1 << ffStartShift
	}
}

// BytesPerWord returns the unit size in bytes for a word length in bits.
// Note the transfer primitive currently moves 8-bit units regardless of
// the configured word length; see the txrx documentation.
func BytesPerWord(bits int) int {
	switch {
	case bits <= 8:
		return 1
	case bits <= 16:
		return 2
	default: // bits <= 32
		return 4
	}
}
