//go:build linux

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kpspi/core"
)

func init() {
	recvCmd.Flags().Uint8Var(&recvOpts.CS, "cs", 0, "chip select index (0-3)")
	recvCmd.Flags().Uint8Var(&recvOpts.Bits, "bits", 8, "word length in bits (4-32)")
	recvCmd.Flags().Uint32Var(&recvOpts.Speed, "speed", 0, "requested clock in Hz (0 = controller default)")
	rootCmd.AddCommand(recvCmd)
}

var (
	recvCmd = &cobra.Command{
		Use:                   "recv [flags] <count>",
		Short:                 "Receive bytes from a chip select line",
		Args:                  cobra.ExactArgs(1),
		RunE:                  recv,
		DisableFlagsInUseLine: true,
	}
	recvOpts = struct {
		CS    uint8
		Bits  uint8
		Speed uint32
	}{}
)

func recv(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil || count <= 0 {
		return fmt.Errorf("bad byte count %q", args[0])
	}

	bus, closer, err := openBus()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := core.NewController(bus, logger)
	dev := &core.Device{Name: "kpspictl", ChipSelect: recvOpts.CS, BitsPerWord: recvOpts.Bits}
	if err := ctrl.Setup(dev); err != nil {
		return err
	}
	defer ctrl.Cleanup(dev)

	buf := make([]byte, count)
	m := &core.Message{Transfers: []core.Transfer{{
		Rx:    buf,
		Len:   count,
		Speed: recvOpts.Speed,
	}}}
	n, err := ctrl.TransferMessage(dev, m)
	if err != nil {
		return err
	}
	fmt.Printf("received %d of %d bytes: %s\n", n, count, hex.EncodeToString(buf[:n]))
	return nil
}
