package core

// controllerState is the per chip-select session a controller keeps for an
// attached device. It outlives a single message: the active word length
// persists across transfers, and the Config cache persists until detach.
type controllerState struct {
	bus        RegisterBus // shared register window, owned by the mapping collaborator
	chipSelect uint8       // chip select index, 0-3
	wordLen    int         // active word length in bits, 4-32
	confCache  int64       // last Config value written, or -1 when nothing is cached
}

func newControllerState(bus RegisterBus, dev *Device) *controllerState {
	return &controllerState{
		bus:        bus,
		chipSelect: dev.ChipSelect,
		wordLen:    int(dev.BitsPerWord),
		confCache:  -1,
	}
}
