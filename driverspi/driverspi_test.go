package driverspi

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpspi/core"
)

// readyBus is a register window whose status always reports ready and
// whose RxData reads pop from a queue.
type readyBus struct {
	rx     []uint64
	conf   uint64
	txData []byte
}

func (b *readyBus) Read(idx int) uint64 {
	switch idx {
	case core.RegStatus:
		return core.StatusRxReady | core.StatusTxReady | core.StatusEOT
	case core.RegRxData:
		if len(b.rx) == 0 {
			return 0
		}
		v := b.rx[0]
		b.rx = b.rx[1:]
		return v
	case core.RegConfig:
		return b.conf
	}
	return 0
}

func (b *readyBus) Write(idx int, val uint64) {
	switch idx {
	case core.RegConfig:
		b.conf = val
	case core.RegTxData:
		b.txData = append(b.txData, byte(val))
	}
}

func newTestBus(t *testing.T) (*Bus, *readyBus) {
	t.Helper()
	rb := &readyBus{}
	ctrl := core.NewController(rb, golog.NewTestLogger(t))
	dev := &core.Device{Name: "adapter-dut", ChipSelect: 0, BitsPerWord: 8}
	b, err := New(ctrl, dev)
	require.NoError(t, err)
	return b, rb
}

func TestTxSendOnly(t *testing.T) {
	b, rb := newTestBus(t)
	require.NoError(t, b.Tx([]byte{1, 2, 3}, nil))
	assert.Equal(t, []byte{1, 2, 3}, rb.txData)
}

func TestTxReceiveOnly(t *testing.T) {
	b, rb := newTestBus(t)
	rb.rx = []uint64{0xA1, 0xA2}
	r := make([]byte, 2)
	require.NoError(t, b.Tx(nil, r))
	assert.Equal(t, []byte{0xA1, 0xA2}, r)
	// Receive legs clock with zero pulses.
	assert.Equal(t, []byte{0, 0}, rb.txData)
}

func TestTxSplitsSendThenReceive(t *testing.T) {
	b, rb := newTestBus(t)
	rb.rx = []uint64{0xEE}
	r := make([]byte, 1)
	require.NoError(t, b.Tx([]byte{0x9F}, r))
	assert.Equal(t, byte(0xEE), r[0])
	// Command byte first, then the receive leg's clock pulse.
	assert.Equal(t, []byte{0x9F, 0x00}, rb.txData)
}

func TestTxEmpty(t *testing.T) {
	b, rb := newTestBus(t)
	require.NoError(t, b.Tx(nil, nil))
	assert.Empty(t, rb.txData)
}

func TestTransferByte(t *testing.T) {
	b, rb := newTestBus(t)
	rb.rx = []uint64{0x42}
	got, err := b.Transfer(0x05)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), got)
}

func TestNewRejectsBadDevice(t *testing.T) {
	ctrl := core.NewController(&readyBus{}, golog.NewTestLogger(t))
	_, err := New(ctrl, &core.Device{Name: "bad", ChipSelect: 9, BitsPerWord: 8})
	assert.ErrorIs(t, err, core.ErrChipSelect)
}
