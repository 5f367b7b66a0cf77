//go:build linux

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"kpspi/core"
)

func init() {
	sendCmd.Flags().Uint8Var(&sendOpts.CS, "cs", 0, "chip select index (0-3)")
	sendCmd.Flags().Uint8Var(&sendOpts.Bits, "bits", 8, "word length in bits (4-32)")
	sendCmd.Flags().Uint32Var(&sendOpts.Speed, "speed", 0, "requested clock in Hz (0 = controller default)")
	rootCmd.AddCommand(sendCmd)
}

var (
	sendCmd = &cobra.Command{
		Use:                   "send [flags] <hexbytes>",
		Short:                 "Send bytes to a chip select line",
		Long:                  `Send a hex byte string (e.g. "9f00aa") to a device on the controller.`,
		Args:                  cobra.ExactArgs(1),
		RunE:                  send,
		DisableFlagsInUseLine: true,
	}
	sendOpts = struct {
		CS    uint8
		Bits  uint8
		Speed uint32
	}{}
)

func send(cmd *cobra.Command, args []string) error {
	data, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("bad hex payload: %w", err)
	}

	bus, closer, err := openBus()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := core.NewController(bus, logger)
	dev := &core.Device{Name: "kpspictl", ChipSelect: sendOpts.CS, BitsPerWord: sendOpts.Bits}
	if err := ctrl.Setup(dev); err != nil {
		return err
	}
	defer ctrl.Cleanup(dev)

	m := &core.Message{Transfers: []core.Transfer{{
		Tx:    data,
		Len:   len(data),
		Speed: sendOpts.Speed,
	}}}
	n, err := ctrl.TransferMessage(dev, m)
	if err != nil {
		return err
	}
	fmt.Printf("sent %d of %d bytes\n", n, len(data))
	return nil
}
