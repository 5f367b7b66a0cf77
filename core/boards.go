package core

import (
	"errors"
	"fmt"
)

// CardID identifies a carrier card hosting the controller. It is the high
// half of the card's 32-bit hardware ID.
type CardID uint16

// Known cards.
const (
	CardP2KR0 CardID = 0x4b00
)

// ErrUnknownCard is returned by BoardDevices for a card ID with no
// registered slave table. Without the table there is no way to know what
// sits behind each chip select line.
var ErrUnknownCard = errors.New("unknown card, no slave device table")

// p2kr0Devices lists the slaves wired to the controller on the P2KR0
// card: four boot/configuration NOR flash parts, one per chip select,
// mode 0, byte-wide words.
var p2kr0Devices = []Device{
	{Name: "p2kr0-flash0", ChipSelect: 0, BitsPerWord: 8},
	{Name: "p2kr0-flash1", ChipSelect: 1, BitsPerWord: 8},
	{Name: "p2kr0-flash2", ChipSelect: 2, BitsPerWord: 8},
	{Name: "p2kr0-flash3", ChipSelect: 3, BitsPerWord: 8},
}

// BoardDevices returns the slave device table for a card. The returned
// descriptors are fresh copies; callers attach them with Setup.
func BoardDevices(card CardID) ([]Device, error) {
	switch card {
	case CardP2KR0:
		devs := make([]Device, len(p2kr0Devices))
		copy(devs, p2kr0Devices)
		return devs, nil
	default:
		return nil, fmt.Errorf("card %#04x: %w", uint16(card), ErrUnknownCard)
	}
}
