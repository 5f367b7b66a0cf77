package core

import (
	"runtime"
	"time"
)

// waitTimeout is the ceiling on every status-bit poll. It is not
// configurable and there is no cancellation path once a wait has begun; a
// stuck bit can only be exited through this timeout.
const waitTimeout = time.Second

// waitForBit polls a register until read(idx)&mask is non-zero or the
// timeout passes. When the deadline is hit, exactly one more read decides
// the outcome: the bit may have asserted in the instant between the last
// poll and the deadline check, and that counts as success, not timeout.
func (s *controllerState) waitForBit(idx int, mask uint64) error {
	deadline := time.Now().Add(waitTimeout)
	for s.readReg(idx)&mask == 0 {
		if time.Now().After(deadline) {
			if s.readReg(idx)&mask == 0 {
				return ErrTimeout
			}
			return nil
		}
		runtime.Gosched()
	}
	return nil
}
