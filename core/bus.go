package core

// RegisterBus is the register window a controller drives. Implementations
// map the five controller registers at 64-bit index granularity: Read(1)
// returns the Status register, not the byte at offset 1.
//
// Bus access is assumed to always complete; a bus fault is fatal to the
// process, not a condition the engine retries. That is why neither method
// returns an error.
type RegisterBus interface {
	Read(idx int) uint64
	Write(idx int, val uint64)
}

// readReg reads a controller register. Reads of the Config register are
// served from the session cache when it is populated, skipping the bus;
// every other register always hits the bus.
func (s *controllerState) readReg(idx int) uint64 {
	if idx == RegConfig && s.confCache >= 0 {
		return uint64(s.confCache)
	}
	return s.bus.Read(idx)
}

// writeReg writes a controller register and refreshes the Config cache on
// Config writes. This is the only path that may write the Config register;
// the cache is valid precisely because no other writer exists.
func (s *controllerState) writeReg(idx int, val uint64) {
	s.bus.Write(idx, val)
	if idx == RegConfig {
		s.confCache = int64(val)
	}
}
