//go:build linux

// Package mmio maps a memory-mapped register window (typically a PCI BAR
// resource file under /sys/bus/pci/devices/) and exposes it as a
// core.RegisterBus: 64-bit accesses at register-index granularity, so
// register i lives at byte offset i*8 into the mapping.
package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"kpspi/core"
)

// Window is a mapped register window. It owns the mapping; controllers
// borrow it for the lifetime of their devices.
type Window struct {
	f    *os.File
	mem  []byte
	regs []uint64
}

var _ core.RegisterBus = (*Window)(nil)

// Map opens path and maps size bytes starting at offset. Size must be a
// positive multiple of the 8-byte register width.
func Map(path string, offset int64, size int) (*Window, error) {
	if size <= 0 || size%8 != 0 {
		return nil, fmt.Errorf("mmio: window size %d is not a positive multiple of 8", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: %w", err)
	}
	mem, err := unix.Mmap(int(f.Fd()), offset, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmio: mmap %s: %w", path, err)
	}
	return &Window{
		f:    f,
		mem:  mem,
		regs: unsafe.Slice((*uint64)(unsafe.Pointer(&mem[0])), size/8),
	}, nil
}

// Read returns register idx. The atomic load keeps the compiler from
// merging or eliding device accesses.
func (w *Window) Read(idx int) uint64 {
	return atomic.LoadUint64(&w.regs[idx])
}

// Write stores register idx.
func (w *Window) Write(idx int, val uint64) {
	atomic.StoreUint64(&w.regs[idx], val)
}

// Len returns the number of registers in the window.
func (w *Window) Len() int {
	return len(w.regs)
}

// Close unmaps the window. The Window must not be used afterwards.
func (w *Window) Close() error {
	err := unix.Munmap(w.mem)
	w.mem = nil
	w.regs = nil
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}
