// Package uartbus drives a controller's registers over a UART register
// bridge, for bring-up when the card's BAR is not yet reachable. The
// bridge speaks a line protocol: "R <idx>\n" answers the register value
// in hex, "W <idx> <hexval>\n" answers "OK".
package uartbus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/tarm/serial"

	"kpspi/core"
)

// Port is the transport under the bridge. The native implementation is a
// tarm serial port; tests substitute an in-memory fake.
type Port interface {
	io.ReadWriteCloser
}

// Bus implements core.RegisterBus over a Port.
type Bus struct {
	port   Port
	rd     *bufio.Reader
	logger golog.Logger
}

var _ core.RegisterBus = (*Bus)(nil)

// Open connects to a bridge on a serial device.
func Open(device string, baud int, logger golog.Logger) (*Bus, error) {
	p, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("uartbus: open %s: %w", device, err)
	}
	return New(p, logger), nil
}

// New wraps an already-open port.
func New(p Port, logger golog.Logger) *Bus {
	return &Bus{port: p, rd: bufio.NewReader(p), logger: logger}
}

// Read fetches a register. RegisterBus has no error path: the engine
// treats bus access as either completing or fatal, so bridge faults are
// logged and read back as zero.
func (b *Bus) Read(idx int) uint64 {
	line, err := b.roundTrip(fmt.Sprintf("R %d\n", idx))
	if err != nil {
		b.logger.Errorf("uartbus: read reg %d: %v", idx, err)
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(line), 16, 64)
	if err != nil {
		b.logger.Errorf("uartbus: read reg %d: bad reply %q", idx, line)
		return 0
	}
	return v
}

// Write stores a register.
func (b *Bus) Write(idx int, val uint64) {
	line, err := b.roundTrip(fmt.Sprintf("W %d %x\n", idx, val))
	if err != nil {
		b.logger.Errorf("uartbus: write reg %d: %v", idx, err)
		return
	}
	if strings.TrimSpace(line) != "OK" {
		b.logger.Errorf("uartbus: write reg %d: bridge said %q", idx, line)
	}
}

func (b *Bus) roundTrip(cmd string) (string, error) {
	if _, err := io.WriteString(b.port, cmd); err != nil {
		return "", err
	}
	return b.rd.ReadString('\n')
}

// Close closes the underlying port.
func (b *Bus) Close() error {
	return b.port.Close()
}
