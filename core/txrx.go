package core

// txrxPIO pushes one transfer through the data registers a byte at a time
// and returns the number of bytes actually moved. The caller detects an
// under-transfer by comparing the count against the requested length.
//
// A send leg waits for TxReady before each byte. A receive leg writes a
// zero byte to TxData first (the hardware needs a transmit pulse to clock
// receive data in), then waits for RxReady and reads RxData.
//
// The primitive moves 8-bit units regardless of the configured word
// length: widths above 8 bits are accepted by the Config model but data
// still crosses the registers one byte at a time. Whether the hardware
// actually clocks wider words for such configs is unresolved, so the
// behavior is kept rather than silently widened; see BytesPerWord.
func (s *controllerState) txrxPIO(t *Transfer) int {
	processed := 0

	if t.Tx != nil {
		for i := 0; i < t.Len; i++ {
			if s.waitForBit(RegStatus, StatusTxReady) != nil {
				return processed
			}
			s.writeReg(RegTxData, uint64(t.Tx[i]))
			processed++
		}
	} else if t.Rx != nil {
		for i := 0; i < t.Len; i++ {
			s.writeReg(RegTxData, 0x00)
			if s.waitForBit(RegStatus, StatusRxReady) != nil {
				return processed
			}
			t.Rx[i] = byte(s.readReg(RegRxData))
			processed++
		}
	}

	// There is no way to abort a transfer the hardware never finishes, so
	// an EOT timeout here leaves the result best effort. It has not been
	// seen outside fault injection.
	_ = s.waitForBit(RegStatus, StatusEOT)

	return processed
}
