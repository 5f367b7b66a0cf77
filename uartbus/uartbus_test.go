package uartbus

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpspi/core"
)

// fakeBridge is an in-memory register bridge: writes parse commands
// against a small register file and queue the reply for the next read.
type fakeBridge struct {
	regs    [5]uint64
	replies bytes.Buffer
	garble  bool // answer nonsense to every command
}

func (f *fakeBridge) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSpace(string(p)), "\n") {
		if f.garble {
			f.replies.WriteString("???\n")
			continue
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 2 && fields[0] == "R":
			idx, _ := strconv.Atoi(fields[1])
			fmt.Fprintf(&f.replies, "%x\n", f.regs[idx])
		case len(fields) == 3 && fields[0] == "W":
			idx, _ := strconv.Atoi(fields[1])
			val, _ := strconv.ParseUint(fields[2], 16, 64)
			f.regs[idx] = val
			f.replies.WriteString("OK\n")
		default:
			f.replies.WriteString("ERR\n")
		}
	}
	return len(p), nil
}

func (f *fakeBridge) Read(p []byte) (int, error) {
	return f.replies.Read(p)
}

func (f *fakeBridge) Close() error { return nil }

func TestBusReadWrite(t *testing.T) {
	br := &fakeBridge{}
	b := New(br, golog.NewTestLogger(t))

	b.Write(core.RegConfig, 0x70)
	assert.Equal(t, uint64(0x70), br.regs[core.RegConfig])
	assert.Equal(t, uint64(0x70), b.Read(core.RegConfig))
	assert.Equal(t, uint64(0), b.Read(core.RegStatus))
}

func TestBusBadReplyReadsZero(t *testing.T) {
	br := &fakeBridge{garble: true}
	b := New(br, golog.NewTestLogger(t))
	assert.Equal(t, uint64(0), b.Read(core.RegStatus))
}

func TestControllerOverBridge(t *testing.T) {
	br := &fakeBridge{}
	br.regs[core.RegStatus] = core.StatusRxReady | core.StatusTxReady | core.StatusEOT

	b := New(br, golog.NewTestLogger(t))
	c := core.NewController(b, golog.NewTestLogger(t))
	dev := &core.Device{Name: "bridge-dut", ChipSelect: 0, BitsPerWord: 8}
	require.NoError(t, c.Setup(dev))

	m := &core.Message{Transfers: []core.Transfer{{Tx: []byte{0x5A}, Len: 1}}}
	n, err := c.TransferMessage(dev, m)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(0x5A), br.regs[core.RegTxData])

	// Chip select released at the end of the sequence.
	assert.False(t, core.ConfigReg(br.regs[core.RegConfig]).SPIEnable())
}
