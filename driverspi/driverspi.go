// Package driverspi exposes one device on a kpspi controller through the
// tinygo.org/x/drivers SPI interface, so device drivers written against
// that interface can run over the controller.
//
// The controller is half duplex: a Tx with both buffers runs the send leg
// first and the receive leg after it as one message, with chip select
// held across both. Devices that need a true simultaneous exchange cannot
// sit behind this adapter.
package driverspi

import (
	"tinygo.org/x/drivers"

	"kpspi/core"
)

// Bus adapts one device on a controller.
type Bus struct {
	ctrl *core.Controller
	dev  *core.Device
}

var _ drivers.SPI = (*Bus)(nil)

// New attaches dev to ctrl and returns the adapter.
func New(ctrl *core.Controller, dev *core.Device) (*Bus, error) {
	if err := ctrl.Setup(dev); err != nil {
		return nil, err
	}
	return &Bus{ctrl: ctrl, dev: dev}, nil
}

// Tx sends w, then fills r, as sequential legs of one message.
func (b *Bus) Tx(w, r []byte) error {
	var legs []core.Transfer
	if len(w) > 0 {
		legs = append(legs, core.Transfer{Tx: w, Len: len(w)})
	}
	if len(r) > 0 {
		legs = append(legs, core.Transfer{Rx: r, Len: len(r)})
	}
	if len(legs) == 0 {
		return nil
	}

	m := &core.Message{Transfers: legs}
	n, err := b.ctrl.TransferMessage(b.dev, m)
	if err != nil {
		return err
	}
	if n != m.Length() {
		return core.ErrShortTransfer
	}
	return nil
}

// Transfer clocks one byte out, then one byte back in.
func (b *Bus) Transfer(c byte) (byte, error) {
	var r [1]byte
	if err := b.Tx([]byte{c}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}
